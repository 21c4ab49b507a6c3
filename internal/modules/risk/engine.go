package risk

import (
	"math/rand"
	"sort"

	"github.com/alphaforge/forge/internal/domain"
	"github.com/alphaforge/forge/internal/modules/refdata"
)

const (
	// marketVolatility scales beta into an indicative volatility percentage.
	marketVolatility = 15.0
	// riskFreeRate is the assumed annual risk-free rate, percent.
	riskFreeRate = 2.0
	// var95Z approximates the 95th-percentile z-score.
	var95Z = 1.65
)

// Engine computes portfolio risk metrics. It holds only reference data and is
// safe for concurrent use.
type Engine struct {
	ref *refdata.Tables
}

// NewEngine creates a risk engine backed by the given reference tables.
func NewEngine(ref *refdata.Tables) *Engine {
	return &Engine{ref: ref}
}

// Analyze derives portfolio-level and per-position risk metrics from the
// given positions. The input is never mutated. rng drives the placeholder
// correlation model; pass a seeded source for reproducible output.
//
// An empty position list yields an all-zero result, not an error.
func (e *Engine) Analyze(positions []domain.Position, rng *rand.Rand) RiskMetrics {
	if len(positions) == 0 {
		return RiskMetrics{
			PositionRisks:       []PositionRisk{},
			SectorConcentration: []SectorConcentration{},
			Correlations:        CorrelationMatrix{Labels: []string{}, Values: [][]float64{}},
		}
	}

	totalValue := 0.0
	for _, pos := range positions {
		totalValue += pos.Value()
	}

	positionRisks := make([]PositionRisk, 0, len(positions))
	portfolioBeta := 0.0
	for _, pos := range positions {
		weight := 0.0
		if totalValue > 0 {
			weight = pos.Value() / totalValue * 100
		}
		beta := e.ref.Beta(pos.Ticker)
		contribution := weight * beta / 100

		positionRisks = append(positionRisks, PositionRisk{
			Ticker:       pos.Ticker,
			Weight:       weight,
			Beta:         beta,
			Volatility:   beta * marketVolatility,
			Contribution: contribution,
		})
		portfolioBeta += contribution
	}

	portfolioVolatility := portfolioBeta * marketVolatility

	sharpe := 0.0
	if portfolioVolatility != 0 {
		sharpe = (portfolioBeta*10 - riskFreeRate) / portfolioVolatility
	}

	return RiskMetrics{
		TotalValue:          totalValue,
		PortfolioBeta:       portfolioBeta,
		PortfolioVolatility: portfolioVolatility,
		SharpeRatio:         sharpe,
		MaxDrawdown:         -portfolioVolatility * 1.5,
		VaR95:               totalValue * (portfolioVolatility / 100) * var95Z,
		PositionRisks:       positionRisks,
		SectorConcentration: e.sectorConcentration(positions, totalValue),
		Correlations:        e.correlationMatrix(positions, rng),
	}
}

// sectorConcentration groups position values by sector and classifies each
// sector's weight. Sorted by weight descending.
func (e *Engine) sectorConcentration(positions []domain.Position, totalValue float64) []SectorConcentration {
	sectorValues := make(map[string]float64)
	for _, pos := range positions {
		sectorValues[pos.Sector] += pos.Value()
	}

	concentrations := make([]SectorConcentration, 0, len(sectorValues))
	for sector, value := range sectorValues {
		weight := 0.0
		if totalValue > 0 {
			weight = value / totalValue * 100
		}
		concentrations = append(concentrations, SectorConcentration{
			Sector:    sector,
			Weight:    weight,
			RiskLevel: classifyConcentration(weight),
		})
	}

	sort.SliceStable(concentrations, func(i, j int) bool {
		if concentrations[i].Weight != concentrations[j].Weight {
			return concentrations[i].Weight > concentrations[j].Weight
		}
		return concentrations[i].Sector < concentrations[j].Sector
	})

	return concentrations
}

// classifyConcentration maps a sector weight (percent) to a risk tier
func classifyConcentration(weight float64) RiskLevel {
	switch {
	case weight > 60:
		return RiskExtreme
	case weight > 40:
		return RiskHigh
	case weight > 25:
		return RiskModerate
	default:
		return RiskLow
	}
}

// correlationMatrix builds a placeholder correlation estimate: same-sector
// pairs draw from [0.7, 0.9), cross-sector pairs from [0.3, 0.6). This is a
// stand-in for a real estimate from return history, which the data model does
// not carry.
func (e *Engine) correlationMatrix(positions []domain.Position, rng *rand.Rand) CorrelationMatrix {
	n := len(positions)
	labels := make([]string, n)
	for i, pos := range positions {
		labels[i] = pos.Ticker
	}

	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		values[i][i] = 1.0
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var corr float64
			if positions[i].Sector == positions[j].Sector {
				corr = 0.7 + rng.Float64()*0.2
			} else {
				corr = 0.3 + rng.Float64()*0.3
			}
			values[i][j] = corr
			values[j][i] = corr
		}
	}

	return CorrelationMatrix{Labels: labels, Values: values}
}
