package formulas

// RealizedMaxDrawdown returns the maximum peak-to-trough decline of a price
// series as a positive fraction (0.25 = 25% below the running peak), or nil
// when there is insufficient data.
func RealizedMaxDrawdown(prices []float64) *float64 {
	if len(prices) < 2 {
		return nil
	}

	maxDrawdown := 0.0
	peak := prices[0]
	for _, price := range prices {
		if price > peak {
			peak = price
		}
		if peak > 0 {
			if dd := (peak - price) / peak; dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}
	return &maxDrawdown
}
