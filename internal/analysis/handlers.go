package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/avdeyev/bodylens/internal/config"
	"github.com/avdeyev/bodylens/internal/reports"
	"github.com/avdeyev/bodylens/internal/storage"
)

// Handlers handles HTTP requests for body analysis
type Handlers struct {
	cfg       *config.Config
	service   *Service
	generator *reports.Generator
}

// NewHandlers creates new handlers
func NewHandlers(cfg *config.Config, service *Service, generator *reports.Generator) *Handlers {
	return &Handlers{cfg: cfg, service: service, generator: generator}
}

// HandleAnalyze handles POST /v1/analysis
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(h.cfg.UploadMaxMB) << 20

	// Extra headroom for the non-file form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("File too large. Maximum size is %dMB.", h.cfg.UploadMaxMB))
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No valid image file provided")
		return
	}
	defer file.Close()

	age, ageErr := strconv.Atoi(strings.TrimSpace(r.FormValue("age")))
	height, heightErr := strconv.Atoi(strings.TrimSpace(r.FormValue("height")))
	weight, weightErr := strconv.ParseFloat(strings.TrimSpace(r.FormValue("weight")), 64)
	if ageErr != nil || heightErr != nil || weightErr != nil {
		writeError(w, http.StatusBadRequest, "Invalid numeric values provided")
		return
	}

	gender := strings.ToLower(strings.TrimSpace(r.FormValue("gender")))
	activity := strings.ToLower(strings.TrimSpace(r.FormValue("activity")))
	if gender == "" || activity == "" {
		writeError(w, http.StatusBadRequest, "Missing required user information")
		return
	}

	if age < 13 || age > 100 {
		writeError(w, http.StatusBadRequest, "Age must be between 13 and 100")
		return
	}
	if height < 100 || height > 250 {
		writeError(w, http.StatusBadRequest, "Height must be between 100 and 250 cm")
		return
	}
	if weight < 30 || weight > 300 {
		writeError(w, http.StatusBadRequest, "Weight must be between 30 and 300 kg")
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(image)
	}
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusBadRequest, "Invalid file type. Please upload an image.")
		return
	}
	if int64(len(image)) > maxBytes {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("File too large. Maximum size is %dMB.", h.cfg.UploadMaxMB))
		return
	}

	inputs := storage.UserInputs{
		Age:      age,
		Gender:   gender,
		Height:   height,
		Weight:   weight,
		Activity: activity,
	}

	record, err := h.service.Analyze(r.Context(), image, contentType, inputs)
	if err != nil {
		h.writeServerError(w, "Internal server error during analysis", err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		BodyFatPercentage: record.BodyFatPercentage,
		Confidence:        record.Confidence,
		BodyType:          record.BodyType,
		BodyShape:         record.BodyShape,
		HealthProblems:    record.HealthProblems,
		AdditionalDetails: record.AdditionalDetails,
		Recommendations:   record.Recommendations,
		ResultID:          record.ID,
	})
}

// HandleGetResult handles GET /v1/analysis/{id}
func (h *Handlers) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	record, err := h.service.GetResult(r.Context(), id)
	if err != nil {
		h.writeServerError(w, "Failed to load analysis result", err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "Result not found")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// HandleGetPhoto handles GET /v1/analysis/{id}/photo
func (h *Handlers) HandleGetPhoto(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// S3 mode hands out a presigned URL instead of proxying bytes.
	// Presign failure falls through to the proxy path.
	if h.cfg.Blob.Mode == config.BlobModeS3 {
		if url, err := h.service.PresignPhoto(r.Context(), id); err == nil && url != "" {
			http.Redirect(w, r, url, http.StatusFound)
			return
		}
	}

	data, contentType, err := h.service.GetPhoto(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Photo not found")
		return
	}
	if data == nil {
		writeError(w, http.StatusNotFound, "Photo not found")
		return
	}

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// HandleGetReport handles GET /v1/analysis/{id}/report
func (h *Handlers) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	record, err := h.service.GetResult(r.Context(), id)
	if err != nil {
		h.writeServerError(w, "Failed to load analysis result", err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "Result not found")
		return
	}

	pdf, err := h.generator.GeneratePDF(record)
	if err != nil {
		h.writeServerError(w, "Failed to generate report", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"analysis-%s.pdf\"", record.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

func (h *Handlers) writeServerError(w http.ResponseWriter, message string, err error) {
	body := map[string]string{"error": message}
	if h.cfg.DebugErrors() && err != nil {
		body["debug"] = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
