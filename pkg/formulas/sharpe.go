package formulas

import "math"

// RealizedSharpe calculates an annualized Sharpe ratio from periodic returns.
//
//	Sharpe = (mean return - periodic risk-free rate) / stddev of returns
//
// riskFreeRate is annual (0.02 for 2%), periodsPerYear is 252 for daily data.
// Returns nil when there is not enough data or volatility is zero.
func RealizedSharpe(returns []float64, riskFreeRate float64, periodsPerYear int) *float64 {
	if len(returns) < 2 {
		return nil
	}

	stdDev := StdDev(returns)
	if stdDev == 0 {
		return nil
	}

	periodicRiskFree := riskFreeRate / float64(periodsPerYear)
	sharpe := (Mean(returns) - periodicRiskFree) / stdDev
	annualized := sharpe * math.Sqrt(float64(periodsPerYear))
	return &annualized
}

// RealizedSharpeFromPrices converts a daily price series to returns and
// calculates the annualized Sharpe ratio.
func RealizedSharpeFromPrices(prices []float64, riskFreeRate float64) *float64 {
	if len(prices) < 2 {
		return nil
	}
	return RealizedSharpe(Returns(prices), riskFreeRate, 252)
}
