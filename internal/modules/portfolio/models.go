package portfolio

import "github.com/alphaforge/forge/internal/domain"

// PositionView is a position enriched with derived valuation fields
type PositionView struct {
	domain.Position
	Value            float64 `json:"value"`
	CostBasis        float64 `json:"cost_basis"`
	Weight           float64 `json:"weight"` // percent of total portfolio value
	UnrealizedPnL    float64 `json:"unrealized_pnl"`
	UnrealizedPnLPct float64 `json:"unrealized_pnl_pct"`
}

// Summary is the portfolio roll-up for the dashboard header
type Summary struct {
	TotalValue       float64        `json:"total_value"`
	CostBasis        float64        `json:"cost_basis"`
	UnrealizedPnL    float64        `json:"unrealized_pnl"`
	UnrealizedPnLPct float64        `json:"unrealized_pnl_pct"`
	PositionCount    int            `json:"position_count"`
	QuotedCount      int            `json:"quoted_count"` // positions with a live price
	Positions        []PositionView `json:"positions"`
}

// Snapshot is a daily record of portfolio value
type Snapshot struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	TotalValue    float64 `json:"total_value"`
	CostBasis     float64 `json:"cost_basis"`
	UnrealizedPnL float64 `json:"unrealized_pnl"`
	PositionCount int     `json:"position_count"`
}
