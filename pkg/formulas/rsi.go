package formulas

import (
	"math"

	"github.com/markcheno/go-talib"
)

// RSI returns the current Relative Strength Index for a closing-price series,
// or nil when there is insufficient data. length is typically 14.
func RSI(closes []float64, length int) *float64 {
	if len(closes) < length+1 {
		return nil
	}

	series := talib.Rsi(closes, length)
	if len(series) == 0 {
		return nil
	}

	last := series[len(series)-1]
	if math.IsNaN(last) {
		return nil
	}
	return &last
}
