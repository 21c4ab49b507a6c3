package domain

import "time"

// AssetType classifies a position's instrument
type AssetType string

const (
	AssetStock  AssetType = "stock"
	AssetCrypto AssetType = "crypto"
	AssetETF    AssetType = "etf"
	AssetBond   AssetType = "bond"
)

// Position represents a portfolio holding.
//
// CurrentPrice == 0 means "no live quote yet"; every valuation falls back to
// AvgPrice in that case. Duplicate tickers are legal and treated as
// independent positions.
type Position struct {
	ID           int64     `json:"id"`
	Ticker       string    `json:"ticker"`
	Shares       float64   `json:"shares"`
	AvgPrice     float64   `json:"avg_price"`
	CurrentPrice float64   `json:"current_price"`
	Sector       string    `json:"sector"`
	Type         AssetType `json:"type"`
	LastUpdated  time.Time `json:"last_updated"`
}

// Value returns the position's valuation, substituting cost basis when no
// live quote is present.
func (p Position) Value() float64 {
	price := p.CurrentPrice
	if price == 0 {
		price = p.AvgPrice
	}
	return p.Shares * price
}

// HasQuote reports whether a live price has been fetched for the position.
func (p Position) HasQuote() bool {
	return p.CurrentPrice != 0
}

// CostBasis returns the total amount paid for the position.
func (p Position) CostBasis() float64 {
	return p.Shares * p.AvgPrice
}

// Quote is a live price observation from a quote provider
type Quote struct {
	Ticker        string    `json:"ticker"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Provider      string    `json:"provider"`
	FetchedAt     time.Time `json:"fetched_at"`
}
