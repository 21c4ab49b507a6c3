package quotes

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Handler handles quote HTTP requests
type Handler struct {
	service *Service
	repo    *Repository
	syncing atomic.Bool
	log     zerolog.Logger
}

// NewHandler creates a new quotes handler
func NewHandler(service *Service, repo *Repository, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		log:     log.With().Str("handler", "quotes").Logger(),
	}
}

// HandleList returns the cached quotes
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.repo.List()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, quotes)
}

// HandleSync triggers a quote refresh in the background. The rate limiter can
// stretch a large sync well past the request timeout, so the work is detached
// and the endpoint answers 202 immediately.
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	if !h.syncing.CompareAndSwap(false, true) {
		h.writeJSON(w, http.StatusConflict, map[string]string{"status": "sync already running"})
		return
	}

	go func() {
		defer h.syncing.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if _, err := h.service.SyncAll(ctx); err != nil {
			h.log.Error().Err(err).Msg("Manual quote sync failed")
		}
	}()

	h.writeJSON(w, http.StatusAccepted, map[string]string{"status": "sync started"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
