package advisor

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/alphaforge/forge/internal/domain"
	"github.com/alphaforge/forge/internal/modules/risk"
)

// Engine evaluates portfolio health with an ordered set of heuristic rules.
// It invokes the risk engine internally for weights, beta and sector data.
type Engine struct {
	risk *risk.Engine
}

// NewEngine creates an advisory engine on top of a risk engine.
func NewEngine(riskEngine *risk.Engine) *Engine {
	return &Engine{risk: riskEngine}
}

// Analyze produces a qualitative portfolio assessment: health score, plain
// language strengths and weaknesses, ranked recommendations and fixed what-if
// scenarios. The input is never mutated; rng feeds the internal risk call.
func (e *Engine) Analyze(positions []domain.Position, rng *rand.Rand) PortfolioAnalysis {
	if len(positions) == 0 {
		return emptyPortfolioAnalysis()
	}

	metrics := e.risk.Analyze(positions, rng)

	var strengths, weaknesses []string
	var recommendations []Recommendation

	// Rule: sector diversification
	sectorCount := len(metrics.SectorConcentration)
	if sectorCount < 3 {
		weaknesses = append(weaknesses, fmt.Sprintf("Low diversification: only %d sector(s)", sectorCount))
		recommendations = append(recommendations, Recommendation{
			Action:     ActionRebalance,
			Title:      "Diversify across more sectors",
			Reasoning:  fmt.Sprintf("The portfolio spans %d sector(s); spreading across at least 3 reduces single-sector risk", sectorCount),
			Confidence: 90,
			Urgency:    UrgencyHigh,
		})
	} else {
		strengths = append(strengths, fmt.Sprintf("Diversified across %d sectors", sectorCount))
	}

	// Rule: top-sector concentration
	if sectorCount > 0 {
		top := metrics.SectorConcentration[0]
		if top.Weight > 50 {
			weaknesses = append(weaknesses, fmt.Sprintf("%s is %.1f%% of the portfolio", top.Sector, top.Weight))
			recommendations = append(recommendations, Recommendation{
				Action:     ActionRebalance,
				Title:      fmt.Sprintf("Trim %s exposure", top.Sector),
				Reasoning:  fmt.Sprintf("%s holds %.1f%% of portfolio value; over 50%% in one sector magnifies drawdowns", top.Sector, top.Weight),
				Confidence: 85,
				Urgency:    UrgencyMedium,
			})
		}
	}

	// Rule: oversized single positions
	for _, pr := range metrics.PositionRisks {
		if pr.Weight > 20 {
			weaknesses = append(weaknesses, fmt.Sprintf("%s is %.1f%% of the portfolio", pr.Ticker, pr.Weight))
			recommendations = append(recommendations, Recommendation{
				Action:     ActionRebalance,
				Ticker:     pr.Ticker,
				Title:      fmt.Sprintf("Reduce %s position size", pr.Ticker),
				Reasoning:  fmt.Sprintf("%s is %.1f%% of portfolio value; single positions above 20%% dominate returns", pr.Ticker, pr.Weight),
				Confidence: 80,
				Urgency:    UrgencyMedium,
			})
		}
	}

	// Rule: portfolio beta bands
	if metrics.PortfolioBeta > 1.3 {
		weaknesses = append(weaknesses, fmt.Sprintf("High portfolio beta of %.2f", metrics.PortfolioBeta))
		recommendations = append(recommendations, Recommendation{
			Action:     ActionRebalance,
			Title:      "Lower overall market sensitivity",
			Reasoning:  fmt.Sprintf("Portfolio beta of %.2f means moves roughly %.0f%% larger than the market; adding defensive holdings would dampen swings", metrics.PortfolioBeta, (metrics.PortfolioBeta-1)*100),
			Confidence: 75,
			Urgency:    UrgencyMedium,
		})
	} else if metrics.PortfolioBeta < 0.8 {
		strengths = append(strengths, fmt.Sprintf("Defensive portfolio beta of %.2f", metrics.PortfolioBeta))
	}

	// Rule: per-position unrealized P&L
	for _, pos := range positions {
		if !pos.HasQuote() || pos.AvgPrice == 0 {
			continue
		}
		pnlPct := (pos.CurrentPrice - pos.AvgPrice) / pos.AvgPrice * 100
		if pnlPct > 50 {
			recommendations = append(recommendations, Recommendation{
				Action:     ActionSell,
				Ticker:     pos.Ticker,
				Title:      fmt.Sprintf("Consider taking profits on %s", pos.Ticker),
				Reasoning:  fmt.Sprintf("%s is up %.1f%%; locking in part of the gain protects against a reversal", pos.Ticker, pnlPct),
				Confidence: 70,
				Urgency:    UrgencyLow,
			})
		} else if pnlPct < -30 {
			weaknesses = append(weaknesses, fmt.Sprintf("%s is down %.1f%%", pos.Ticker, -pnlPct))
			recommendations = append(recommendations, Recommendation{
				Action:     ActionSell,
				Ticker:     pos.Ticker,
				Title:      fmt.Sprintf("Review stop-loss on %s", pos.Ticker),
				Reasoning:  fmt.Sprintf("%s is down %.1f%% from cost basis; decide whether the thesis still holds or cut the loss", pos.Ticker, -pnlPct),
				Confidence: 75,
				Urgency:    UrgencyHigh,
			})
		}
	}

	score := healthScore(len(strengths), len(weaknesses), metrics.PortfolioBeta)

	sortByUrgency(recommendations)

	return PortfolioAnalysis{
		OverallHealth:    healthBand(score),
		HealthScore:      score,
		Strengths:        strengths,
		Weaknesses:       weaknesses,
		Recommendations:  recommendations,
		ScenarioAnalysis: scenarios(metrics),
	}
}

// emptyPortfolioAnalysis is the fixed result for an empty position list
func emptyPortfolioAnalysis() PortfolioAnalysis {
	return PortfolioAnalysis{
		OverallHealth: HealthCritical,
		HealthScore:   0,
		Strengths:     []string{},
		Weaknesses:    []string{"No positions held"},
		Recommendations: []Recommendation{{
			Action:     ActionAlert,
			Title:      "Add positions to get started",
			Reasoning:  "The portfolio is empty; analytics need at least one position",
			Confidence: 100,
			Urgency:    UrgencyCritical,
		}},
		ScenarioAnalysis: []Scenario{},
	}
}

// healthScore starts at 70, credits strengths, penalizes weaknesses and
// above-market beta, and clamps to [0, 100].
func healthScore(strengths, weaknesses int, beta float64) float64 {
	score := 70.0 + 5*float64(strengths) - 8*float64(weaknesses) - (beta-1)*10
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// healthBand maps a score to its qualitative label
func healthBand(score float64) Health {
	switch {
	case score >= 80:
		return HealthExcellent
	case score >= 65:
		return HealthGood
	case score >= 50:
		return HealthFair
	case score >= 30:
		return HealthPoor
	default:
		return HealthCritical
	}
}

// scenarios applies the fixed what-if shocks. The tech boom scenario shocks
// only the Technology sector's share of value.
func scenarios(metrics risk.RiskMetrics) []Scenario {
	total := metrics.TotalValue

	techValue := 0.0
	for _, sc := range metrics.SectorConcentration {
		if sc.Sector == "Technology" {
			techValue = total * sc.Weight / 100
			break
		}
	}

	techShock := techValue * 0.40
	techChangePct := 0.0
	if total > 0 {
		techChangePct = techShock / total * 100
	}

	return []Scenario{
		{
			Name:           "Bull Market",
			Description:    "Broad market rallies 20%",
			PortfolioValue: total * 1.20,
			ChangePercent:  20,
		},
		{
			Name:           "Bear Market",
			Description:    "Broad market falls 20%",
			PortfolioValue: total * 0.80,
			ChangePercent:  -20,
		},
		{
			Name:           "Recession",
			Description:    "Severe downturn cuts values 35%",
			PortfolioValue: total * 0.65,
			ChangePercent:  -35,
		},
		{
			Name:           "AI/Tech Boom",
			Description:    "Technology sector gains 40%",
			PortfolioValue: total + techShock,
			ChangePercent:  techChangePct,
		},
	}
}

// sortByUrgency orders recommendations critical first, preserving rule order
// within each tier.
func sortByUrgency(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return urgencyRank(recs[i].Urgency) < urgencyRank(recs[j].Urgency)
	})
}

func urgencyRank(u Urgency) int {
	// Exhaustive over the Urgency values; unknown sorts last.
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyHigh:
		return 1
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 3
	}
	return 4
}
