package tax

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/alphaforge/forge/internal/modules/portfolio"
)

// Handler handles tax analytics HTTP requests
type Handler struct {
	positionRepo       *portfolio.PositionRepository
	engine             *Engine
	defaultOtherIncome float64
	log                zerolog.Logger
}

// NewHandler creates a new tax handler
func NewHandler(positionRepo *portfolio.PositionRepository, engine *Engine, defaultOtherIncome float64, log zerolog.Logger) *Handler {
	return &Handler{
		positionRepo:       positionRepo,
		engine:             engine,
		defaultOtherIncome: defaultOtherIncome,
		log:                log.With().Str("handler", "tax").Logger(),
	}
}

// HandleGetTax computes and returns the tax summary.
// ?other_income=N overrides the configured income assumption.
func (h *Handler) HandleGetTax(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positionRepo.List()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	otherIncome := h.defaultOtherIncome
	if v := r.URL.Query().Get("other_income"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			h.writeError(w, http.StatusBadRequest, "other_income must be a non-negative number")
			return
		}
		otherIncome = parsed
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	summary := h.engine.Analyze(positions, Params{OtherIncome: otherIncome}, rng)

	h.writeJSON(w, http.StatusOK, summary)
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
