package httpserver

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/avdeyev/bodylens/internal/ai"
	"github.com/avdeyev/bodylens/internal/analysis"
	"github.com/avdeyev/bodylens/internal/blob"
	"github.com/avdeyev/bodylens/internal/config"
	"github.com/avdeyev/bodylens/internal/mealplans"
	"github.com/avdeyev/bodylens/internal/reports"
	"github.com/avdeyev/bodylens/internal/storage"
	"github.com/avdeyev/bodylens/internal/storage/memory"
	"github.com/avdeyev/bodylens/internal/vision"
)

// Server wires storage, providers and handlers behind an http.ServeMux.
type Server struct {
	config  *config.Config
	mux     *http.ServeMux
	results storage.ResultsStorage
	blobs   blob.Store
}

func New(cfg *config.Config) (*Server, error) {
	results := memory.NewResultsStorage(cfg.ResultsCapacity, time.Duration(cfg.ResultsTTLMinutes)*time.Minute)

	blobs, blobMode, err := blob.NewBlobStore(cfg.Blob, log.Default())
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: blob storage initialized mode=%s", blobMode)

	visionProvider := vision.NewProvider(cfg)
	aiProvider := ai.NewProvider(cfg)

	s := &Server{
		config:  cfg,
		mux:     http.NewServeMux(),
		results: results,
		blobs:   blobs,
	}
	s.routes(visionProvider, aiProvider)
	return s, nil
}

func (s *Server) routes(visionProvider vision.Provider, aiProvider ai.Provider) {
	analysisService := analysis.NewService(s.config, visionProvider, aiProvider, s.results, s.blobs)
	analysisHandlers := analysis.NewHandlers(s.config, analysisService, reports.NewGenerator())

	mealplanService := mealplans.NewService(s.config, aiProvider)
	mealplanHandlers := mealplans.NewHandlers(s.config, mealplanService)

	// Health
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Body analysis
	s.mux.HandleFunc("POST /v1/analysis", analysisHandlers.HandleAnalyze)
	s.mux.HandleFunc("GET /v1/analysis/{id}", analysisHandlers.HandleGetResult)
	s.mux.HandleFunc("GET /v1/analysis/{id}/photo", analysisHandlers.HandleGetPhoto)
	s.mux.HandleFunc("GET /v1/analysis/{id}/report", analysisHandlers.HandleGetReport)

	// Meal plans
	s.mux.HandleFunc("POST /v1/mealplans/generate", mealplanHandlers.HandleGenerate)
	s.mux.HandleFunc("POST /v1/mealplans/modify", mealplanHandlers.HandleModify)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Handler returns the fully wrapped handler chain.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("INFO: listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) Close() error {
	return s.results.Close()
}
