package tax

// Recommendation classifies a tax-loss harvesting candidate
type Recommendation string

const (
	RecommendHarvest Recommendation = "harvest"
	RecommendHold    Recommendation = "hold"
	RecommendAvoid   Recommendation = "avoid"
)

// TaxLossOpportunity is a position currently trading below cost basis
type TaxLossOpportunity struct {
	Ticker         string         `json:"ticker"`
	Shares         float64        `json:"shares"`
	AvgPrice       float64        `json:"avg_price"`
	CurrentPrice   float64        `json:"current_price"`
	CurrentLoss    float64        `json:"current_loss"` // positive number
	DaysHeld       int            `json:"days_held"`    // synthetic, see engine doc
	Recommendation Recommendation `json:"recommendation"`
	Reasoning      string         `json:"reasoning"`
}

// TaxSummary aggregates unrealized gains and harvesting potential
type TaxSummary struct {
	UnrealizedGain     float64              `json:"unrealized_gain"`
	UnrealizedLoss     float64              `json:"unrealized_loss"` // positive number
	NetUnrealized      float64              `json:"net_unrealized"`
	HarvestableLosses  float64              `json:"harvestable_losses"` // positive number
	TotalOpportunities int                  `json:"total_opportunities"`
	EstimatedTax       float64              `json:"estimated_tax"`
	PotentialSavings   float64              `json:"potential_savings"`
	MarginalRate       float64              `json:"marginal_rate"`
	Opportunities      []TaxLossOpportunity `json:"opportunities"`
}
