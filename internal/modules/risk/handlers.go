package risk

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/alphaforge/forge/internal/modules/history"
	"github.com/alphaforge/forge/internal/modules/portfolio"
	"github.com/alphaforge/forge/pkg/formulas"
)

// RealizedStats supplements the model-based metrics with statistics computed
// from recorded price history, when enough of it exists.
type RealizedStats struct {
	Ticker      string   `json:"ticker"`
	Samples     int      `json:"samples"`
	Volatility  float64  `json:"volatility"` // annualized, percent
	Sharpe      *float64 `json:"sharpe,omitempty"`
	MaxDrawdown *float64 `json:"max_drawdown,omitempty"` // fraction of peak
	RSI         *float64 `json:"rsi,omitempty"`
}

// Handler handles risk analytics HTTP requests
type Handler struct {
	positionRepo *portfolio.PositionRepository
	engine       *Engine
	historyStore *history.Store
	riskFreeRate float64 // annual, percent
	log          zerolog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(
	positionRepo *portfolio.PositionRepository,
	engine *Engine,
	historyStore *history.Store,
	riskFreeRate float64,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		positionRepo: positionRepo,
		engine:       engine,
		historyStore: historyStore,
		riskFreeRate: riskFreeRate,
		log:          log.With().Str("handler", "risk").Logger(),
	}
}

type riskResponse struct {
	RiskMetrics
	Realized []RealizedStats `json:"realized"`
}

// HandleGetRisk computes and returns portfolio risk metrics
func (h *Handler) HandleGetRisk(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positionRepo.List()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	metrics := h.engine.Analyze(positions, rng)

	h.writeJSON(w, http.StatusOK, riskResponse{
		RiskMetrics: metrics,
		Realized:    h.realizedStats(metrics.PositionRisks),
	})
}

// realizedStats computes history-based statistics per held ticker. Missing
// history is not an error; the ticker is simply omitted.
func (h *Handler) realizedStats(positionRisks []PositionRisk) []RealizedStats {
	const minSamples = 20

	seen := make(map[string]bool)
	stats := []RealizedStats{}
	for _, pr := range positionRisks {
		if seen[pr.Ticker] {
			continue
		}
		seen[pr.Ticker] = true

		closes, err := h.historyStore.CloseSeries(pr.Ticker, 252)
		if err != nil {
			h.log.Warn().Err(err).Str("ticker", pr.Ticker).Msg("Failed to load price history")
			continue
		}
		if len(closes) < minSamples {
			continue
		}

		returns := formulas.Returns(closes)
		stats = append(stats, RealizedStats{
			Ticker:      pr.Ticker,
			Samples:     len(closes),
			Volatility:  formulas.AnnualizedVolatility(returns) * 100,
			Sharpe:      formulas.RealizedSharpe(returns, h.riskFreeRate/100, 252),
			MaxDrawdown: formulas.RealizedMaxDrawdown(closes),
			RSI:         formulas.RSI(closes, 14),
		})
	}

	return stats
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
