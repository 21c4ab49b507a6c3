package advisor

// Action is the kind of move a recommendation proposes
type Action string

const (
	ActionBuy       Action = "buy"
	ActionSell      Action = "sell"
	ActionHold      Action = "hold"
	ActionRebalance Action = "rebalance"
	ActionAlert     Action = "alert"
)

// Urgency orders recommendations for display
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// Health bands for the overall portfolio score
type Health string

const (
	HealthExcellent Health = "excellent"
	HealthGood      Health = "good"
	HealthFair      Health = "fair"
	HealthPoor      Health = "poor"
	HealthCritical  Health = "critical"
)

// Recommendation is a single piece of advice. Ticker is empty for
// portfolio-level recommendations.
type Recommendation struct {
	Action     Action  `json:"action"`
	Ticker     string  `json:"ticker,omitempty"`
	Title      string  `json:"title"`
	Reasoning  string  `json:"reasoning"`
	Confidence int     `json:"confidence"` // 0-100
	Urgency    Urgency `json:"urgency"`
}

// Scenario is a fixed what-if shock applied to the portfolio
type Scenario struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	PortfolioValue float64 `json:"portfolio_value"`
	ChangePercent  float64 `json:"change_percent"`
}

// PortfolioAnalysis is the Advisory Engine result
type PortfolioAnalysis struct {
	OverallHealth    Health           `json:"overall_health"`
	HealthScore      float64          `json:"health_score"` // 0-100
	Strengths        []string         `json:"strengths"`
	Weaknesses       []string         `json:"weaknesses"`
	Recommendations  []Recommendation `json:"recommendations"`
	ScenarioAnalysis []Scenario       `json:"scenario_analysis"`
}
