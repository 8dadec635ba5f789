package mealplans

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avdeyev/bodylens/internal/config"
)

// Handlers handles HTTP requests for meal planning
type Handlers struct {
	cfg     *config.Config
	service *Service
}

// NewHandlers creates new handlers
func NewHandlers(cfg *config.Config, service *Service) *Handlers {
	return &Handlers{cfg: cfg, service: service}
}

// HandleGenerate handles POST /v1/mealplans/generate
func (h *Handlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	response, err := h.service.Generate(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// HandleModify handles POST /v1/mealplans/modify
func (h *Handlers) HandleModify(w http.ResponseWriter, r *http.Request) {
	var req ModifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	response, err := h.service.Modify(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingData),
		errors.Is(err, ErrMissingProfile),
		errors.Is(err, ErrMissingGoal),
		errors.Is(err, ErrMissingModifyData),
		errors.Is(err, ErrInvalidMeal),
		errors.Is(err, ErrRequestTooShort):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		body := map[string]string{"error": "Internal server error while generating meal plan."}
		if h.cfg.DebugErrors() {
			body["debug"] = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, body)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
