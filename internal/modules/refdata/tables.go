package refdata

// Tables bundles the static reference data the analytics engines consume.
// It is passed into engine constructors rather than read from package state,
// so tests can substitute their own values.
type Tables struct {
	betas     map[string]float64
	dividends map[string]Dividend
	earnings  map[string]Earnings
}

// Dividend describes a symbol's dividend schedule
type Dividend struct {
	Ticker       string  `json:"ticker"`
	AnnualPerShr float64 `json:"annual_per_share"`
	Yield        float64 `json:"yield"`
	ExDay        int     `json:"ex_day"`    // day of month of the next ex-dividend date
	ExMonths     []int   `json:"ex_months"` // months with an ex-dividend date (1-12)
}

// Earnings describes a symbol's next expected earnings report
type Earnings struct {
	Ticker string `json:"ticker"`
	Month  int    `json:"month"` // 1-12
	Day    int    `json:"day"`
	Timing string `json:"timing"` // "BMO" (before open) or "AMC" (after close)
}

// DefaultBeta is used for symbols missing from the beta table.
const DefaultBeta = 1.0

// Beta returns the market beta for a symbol, or DefaultBeta when unknown.
func (t *Tables) Beta(ticker string) float64 {
	if b, ok := t.betas[ticker]; ok {
		return b
	}
	return DefaultBeta
}

// Dividend returns the dividend schedule for a symbol, if known.
func (t *Tables) Dividend(ticker string) (Dividend, bool) {
	d, ok := t.dividends[ticker]
	return d, ok
}

// Earnings returns the earnings schedule for a symbol, if known.
func (t *Tables) Earnings(ticker string) (Earnings, bool) {
	e, ok := t.earnings[ticker]
	return e, ok
}

// New creates a Tables from explicit maps. Nil maps are allowed.
func New(betas map[string]float64, dividends map[string]Dividend, earnings map[string]Earnings) *Tables {
	return &Tables{betas: betas, dividends: dividends, earnings: earnings}
}

// Defaults returns the bundled reference tables.
func Defaults() *Tables {
	return New(defaultBetas, defaultDividends, defaultEarnings)
}

var defaultBetas = map[string]float64{
	"AAPL":  1.20,
	"MSFT":  0.95,
	"GOOGL": 1.05,
	"AMZN":  1.15,
	"NVDA":  1.70,
	"META":  1.25,
	"TSLA":  2.00,
	"AMD":   1.85,
	"NFLX":  1.30,
	"CRM":   1.10,
	"JPM":   1.10,
	"BAC":   1.35,
	"GS":    1.25,
	"V":     0.95,
	"MA":    1.05,
	"JNJ":   0.55,
	"PFE":   0.65,
	"UNH":   0.70,
	"ABBV":  0.60,
	"XOM":   1.05,
	"CVX":   1.10,
	"KO":    0.60,
	"PEP":   0.55,
	"PG":    0.45,
	"WMT":   0.50,
	"HD":    1.00,
	"DIS":   1.20,
	"SPY":   1.00,
	"QQQ":   1.15,
	"VTI":   1.00,
	"VOO":   1.00,
	"IWM":   1.20,
	"AGG":   0.10,
	"BND":   0.10,
	"GLD":   0.15,
	"BTC":   2.50,
	"ETH":   2.80,
	"SOL":   3.20,
}

var defaultDividends = map[string]Dividend{
	"AAPL": {Ticker: "AAPL", AnnualPerShr: 1.00, Yield: 0.55, ExDay: 10, ExMonths: []int{2, 5, 8, 11}},
	"MSFT": {Ticker: "MSFT", AnnualPerShr: 3.32, Yield: 0.80, ExDay: 15, ExMonths: []int{2, 5, 8, 11}},
	"JNJ":  {Ticker: "JNJ", AnnualPerShr: 4.96, Yield: 3.10, ExDay: 22, ExMonths: []int{2, 5, 8, 11}},
	"JPM":  {Ticker: "JPM", AnnualPerShr: 4.60, Yield: 2.30, ExDay: 5, ExMonths: []int{1, 4, 7, 10}},
	"KO":   {Ticker: "KO", AnnualPerShr: 1.94, Yield: 3.10, ExDay: 14, ExMonths: []int{3, 6, 9, 12}},
	"PG":   {Ticker: "PG", AnnualPerShr: 4.03, Yield: 2.40, ExDay: 19, ExMonths: []int{1, 4, 7, 10}},
	"XOM":  {Ticker: "XOM", AnnualPerShr: 3.80, Yield: 3.30, ExDay: 12, ExMonths: []int{2, 5, 8, 11}},
	"CVX":  {Ticker: "CVX", AnnualPerShr: 6.52, Yield: 4.10, ExDay: 16, ExMonths: []int{2, 5, 8, 11}},
	"V":    {Ticker: "V", AnnualPerShr: 2.08, Yield: 0.74, ExDay: 8, ExMonths: []int{2, 5, 8, 11}},
	"SPY":  {Ticker: "SPY", AnnualPerShr: 6.72, Yield: 1.30, ExDay: 20, ExMonths: []int{3, 6, 9, 12}},
	"VTI":  {Ticker: "VTI", AnnualPerShr: 3.54, Yield: 1.40, ExDay: 24, ExMonths: []int{3, 6, 9, 12}},
	"PEP":  {Ticker: "PEP", AnnualPerShr: 5.42, Yield: 3.20, ExDay: 6, ExMonths: []int{3, 6, 9, 12}},
	"WMT":  {Ticker: "WMT", AnnualPerShr: 0.83, Yield: 0.90, ExDay: 9, ExMonths: []int{3, 5, 8, 12}},
	"HD":   {Ticker: "HD", AnnualPerShr: 9.00, Yield: 2.40, ExDay: 28, ExMonths: []int{3, 6, 9, 12}},
	"UNH":  {Ticker: "UNH", AnnualPerShr: 8.18, Yield: 1.60, ExDay: 11, ExMonths: []int{3, 6, 9, 12}},
}

var defaultEarnings = map[string]Earnings{
	"AAPL":  {Ticker: "AAPL", Month: 10, Day: 30, Timing: "AMC"},
	"MSFT":  {Ticker: "MSFT", Month: 10, Day: 28, Timing: "AMC"},
	"GOOGL": {Ticker: "GOOGL", Month: 10, Day: 27, Timing: "AMC"},
	"AMZN":  {Ticker: "AMZN", Month: 10, Day: 29, Timing: "AMC"},
	"NVDA":  {Ticker: "NVDA", Month: 11, Day: 19, Timing: "AMC"},
	"META":  {Ticker: "META", Month: 10, Day: 28, Timing: "AMC"},
	"TSLA":  {Ticker: "TSLA", Month: 10, Day: 21, Timing: "AMC"},
	"AMD":   {Ticker: "AMD", Month: 11, Day: 3, Timing: "AMC"},
	"JPM":   {Ticker: "JPM", Month: 10, Day: 13, Timing: "BMO"},
	"JNJ":   {Ticker: "JNJ", Month: 10, Day: 14, Timing: "BMO"},
	"XOM":   {Ticker: "XOM", Month: 10, Day: 31, Timing: "BMO"},
	"KO":    {Ticker: "KO", Month: 10, Day: 22, Timing: "BMO"},
	"WMT":   {Ticker: "WMT", Month: 11, Day: 20, Timing: "BMO"},
	"UNH":   {Ticker: "UNH", Month: 10, Day: 15, Timing: "BMO"},
	"DIS":   {Ticker: "DIS", Month: 11, Day: 13, Timing: "AMC"},
}
