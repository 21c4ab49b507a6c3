package advisor

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/alphaforge/forge/internal/modules/portfolio"
)

// Handler handles advisory HTTP requests
type Handler struct {
	positionRepo *portfolio.PositionRepository
	engine       *Engine
	log          zerolog.Logger
}

// NewHandler creates a new advisor handler
func NewHandler(positionRepo *portfolio.PositionRepository, engine *Engine, log zerolog.Logger) *Handler {
	return &Handler{
		positionRepo: positionRepo,
		engine:       engine,
		log:          log.With().Str("handler", "advisor").Logger(),
	}
}

// HandleGetAnalysis computes and returns the portfolio health analysis
func (h *Handler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positionRepo.List()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	analysis := h.engine.Analyze(positions, rng)

	h.writeJSON(w, http.StatusOK, analysis)
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
