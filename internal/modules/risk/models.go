package risk

// RiskLevel classifies sector concentration
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskExtreme  RiskLevel = "extreme"
)

// PositionRisk holds per-position risk figures
type PositionRisk struct {
	Ticker       string  `json:"ticker"`
	Weight       float64 `json:"weight"`       // percent of total portfolio value
	Beta         float64 `json:"beta"`         // market beta from the reference table
	Volatility   float64 `json:"volatility"`   // beta-scaled, percent
	Contribution float64 `json:"contribution"` // contribution to portfolio beta
}

// SectorConcentration holds one sector's share of the portfolio
type SectorConcentration struct {
	Sector    string    `json:"sector"`
	Weight    float64   `json:"weight"` // percent of total portfolio value
	RiskLevel RiskLevel `json:"risk_level"`
}

// CorrelationMatrix is a position-by-position correlation estimate.
// Rows and columns follow Labels; duplicate tickers keep separate rows.
type CorrelationMatrix struct {
	Labels []string    `json:"labels"`
	Values [][]float64 `json:"values"`
}

// RiskMetrics is the Risk Engine result, recomputed from scratch on every call
type RiskMetrics struct {
	TotalValue          float64               `json:"total_value"`
	PortfolioBeta       float64               `json:"portfolio_beta"`
	PortfolioVolatility float64               `json:"portfolio_volatility"`
	SharpeRatio         float64               `json:"sharpe_ratio"`
	MaxDrawdown         float64               `json:"max_drawdown"`
	VaR95               float64               `json:"var_95"`
	PositionRisks       []PositionRisk        `json:"position_risks"`
	SectorConcentration []SectorConcentration `json:"sector_concentration"`
	Correlations        CorrelationMatrix     `json:"correlations"`
}
