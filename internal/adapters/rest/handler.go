package rest

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Verisomusic/BeatMatch/internal/core/services"
)

// Handler manages the HTTP interface for the analysis service.
type Handler struct {
	svc               *services.Orchestrator
	router            *http.ServeMux
	chain             http.Handler
	log               *zap.Logger
	catalogConfigured bool
	maxUploadBytes    int64
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Orchestrator, log *zap.Logger, catalogConfigured bool, maxUploadBytes int64) *Handler {
	h := &Handler{
		svc:               svc,
		router:            http.NewServeMux(),
		log:               log,
		catalogConfigured: catalogConfigured,
		maxUploadBytes:    maxUploadBytes,
	}
	h.routes()
	h.chain = withRequestID(withLogging(log, withCORS(h.router)))
	return h
}

// ServeHTTP satisfies http.Handler, passing the request through the
// middleware chain into the internal router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.chain.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /{$}", h.HealthCheck)
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("POST /analyze", h.Analyze)
}

// HealthCheck reports static liveness plus whether live catalog lookups are
// enabled. It never depends on prior request outcomes.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "ok",
		"catalog_configured": h.catalogConfigured,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError emits the {"detail": ...} error envelope.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
