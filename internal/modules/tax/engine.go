package tax

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/alphaforge/forge/internal/domain"
)

// Long-term capital gains brackets (single filer, simplified).
var brackets = []struct {
	Threshold float64
	Rate      float64
}{
	{40000, 0},
	{200000, 0.15},
	{500000, 0.20},
}

// topRate applies above the last bracket threshold (includes NIIT).
const topRate = 0.238

// Harvest thresholds: losses above these are worth realizing.
const (
	largeLoss    = 10000.0
	moderateLoss = 3000.0
	washSaleDays = 30
)

// Params configures a tax computation.
type Params struct {
	// OtherIncome is assumed non-portfolio income used to select the
	// marginal long-term rate.
	OtherIncome float64
}

// Engine computes unrealized tax figures and harvesting candidates.
//
// The model is deliberately simplified: all gains are treated as long-term
// (the data model carries no purchase dates) and days-held is synthesized
// from rng rather than derived from real history.
type Engine struct{}

// NewEngine creates a tax engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Analyze computes the tax summary for the given positions. Positions without
// a live quote are excluded from gain/loss sums entirely. The input is never
// mutated and no error paths exist.
func (e *Engine) Analyze(positions []domain.Position, params Params, rng *rand.Rand) TaxSummary {
	var gains, losses float64
	opportunities := []TaxLossOpportunity{}

	for _, pos := range positions {
		if !pos.HasQuote() {
			continue
		}

		pnl := (pos.CurrentPrice - pos.AvgPrice) * pos.Shares
		if pnl >= 0 {
			gains += pnl
			continue
		}

		loss := -pnl
		losses += loss

		daysHeld := 1 + rng.Intn(365)
		rec, reason := classify(loss, daysHeld)
		opportunities = append(opportunities, TaxLossOpportunity{
			Ticker:         pos.Ticker,
			Shares:         pos.Shares,
			AvgPrice:       pos.AvgPrice,
			CurrentPrice:   pos.CurrentPrice,
			CurrentLoss:    loss,
			DaysHeld:       daysHeld,
			Recommendation: rec,
			Reasoning:      reason,
		})
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].CurrentLoss > opportunities[j].CurrentLoss
	})

	rate := marginalRate(params.OtherIncome + gains)

	estimatedTax := 0.0
	if gains > 0 {
		estimatedTax = gains * rate
	}

	harvestable := 0.0
	for _, opp := range opportunities {
		if opp.Recommendation == RecommendHarvest {
			harvestable += opp.CurrentLoss
		}
	}

	return TaxSummary{
		UnrealizedGain:     gains,
		UnrealizedLoss:     losses,
		NetUnrealized:      gains - losses,
		HarvestableLosses:  harvestable,
		TotalOpportunities: len(opportunities),
		EstimatedTax:       estimatedTax,
		PotentialSavings:   harvestable * rate,
		MarginalRate:       rate,
		Opportunities:      opportunities,
	}
}

// classify maps a loss and holding period to a harvest recommendation
func classify(loss float64, daysHeld int) (Recommendation, string) {
	switch {
	case daysHeld < washSaleDays:
		return RecommendAvoid, fmt.Sprintf("held %d days; selling now risks a wash sale within the 30-day window", daysHeld)
	case loss > largeLoss:
		return RecommendHarvest, fmt.Sprintf("large loss of $%.2f can offset substantial gains", loss)
	case loss > moderateLoss:
		return RecommendHarvest, fmt.Sprintf("moderate loss of $%.2f is worth harvesting", loss)
	default:
		return RecommendHold, "loss is too small to justify transaction costs"
	}
}

// marginalRate brackets combined income into a long-term capital gains rate
func marginalRate(income float64) float64 {
	for _, b := range brackets {
		if income <= b.Threshold {
			return b.Rate
		}
	}
	return topRate
}
