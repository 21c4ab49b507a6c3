package formulas

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"several", []float64{1, 2, 3, 4}, 2.5},
		{"negative", []float64{-2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.data); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Mean(%v) = %f, want %f", tt.data, got, tt.expected)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	if got := StdDev(nil); got != 0 {
		t.Errorf("StdDev(nil) = %f, want 0", got)
	}

	// Sample stddev of {2, 4, 4, 4, 5, 5, 7, 9} is sqrt(32/7)
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	expected := math.Sqrt(32.0 / 7.0)
	if got := StdDev(data); math.Abs(got-expected) > 1e-9 {
		t.Errorf("StdDev = %f, want %f", got, expected)
	}
}

func TestReturns(t *testing.T) {
	prices := []float64{100, 110, 99}
	returns := Returns(prices)

	if len(returns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(returns))
	}
	if math.Abs(returns[0]-0.10) > 1e-9 {
		t.Errorf("returns[0] = %f, want 0.10", returns[0])
	}
	if math.Abs(returns[1]-(-0.10)) > 1e-9 {
		t.Errorf("returns[1] = %f, want -0.10", returns[1])
	}
}

func TestReturns_ShortSeries(t *testing.T) {
	if got := Returns([]float64{100}); len(got) != 0 {
		t.Errorf("expected no returns for a single price, got %v", got)
	}
	if got := Returns(nil); len(got) != 0 {
		t.Errorf("expected no returns for nil prices, got %v", got)
	}
}

func TestAnnualizedVolatility(t *testing.T) {
	if got := AnnualizedVolatility(nil); got != 0 {
		t.Errorf("AnnualizedVolatility(nil) = %f, want 0", got)
	}

	returns := []float64{0.01, -0.01, 0.02, -0.02}
	expected := StdDev(returns) * math.Sqrt(252)
	if got := AnnualizedVolatility(returns); math.Abs(got-expected) > 1e-9 {
		t.Errorf("AnnualizedVolatility = %f, want %f", got, expected)
	}
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4}

	if got := Correlation(x, x); math.Abs(got-1) > 1e-9 {
		t.Errorf("self correlation = %f, want 1", got)
	}

	inverse := []float64{4, 3, 2, 1}
	if got := Correlation(x, inverse); math.Abs(got+1) > 1e-9 {
		t.Errorf("inverse correlation = %f, want -1", got)
	}

	if got := Correlation(x, []float64{1, 2}); got != 0 {
		t.Errorf("mismatched lengths should return 0, got %f", got)
	}
	if got := Correlation(nil, nil); got != 0 {
		t.Errorf("empty series should return 0, got %f", got)
	}
}

func TestRealizedSharpe(t *testing.T) {
	if got := RealizedSharpe([]float64{0.01}, 0.02, 252); got != nil {
		t.Errorf("expected nil for a single return, got %f", *got)
	}
	if got := RealizedSharpe([]float64{0.01, 0.01, 0.01}, 0.02, 252); got != nil {
		t.Errorf("expected nil for zero volatility, got %f", *got)
	}

	returns := []float64{0.01, -0.005, 0.02, 0.003}
	got := RealizedSharpe(returns, 0.02, 252)
	if got == nil {
		t.Fatal("expected a sharpe value")
	}
	expected := (Mean(returns) - 0.02/252) / StdDev(returns) * math.Sqrt(252)
	if math.Abs(*got-expected) > 1e-9 {
		t.Errorf("RealizedSharpe = %f, want %f", *got, expected)
	}
}

func TestRealizedSharpeFromPrices(t *testing.T) {
	if got := RealizedSharpeFromPrices([]float64{100}, 0.02); got != nil {
		t.Errorf("expected nil for a single price, got %f", *got)
	}

	prices := []float64{100, 102, 101, 105, 104}
	fromPrices := RealizedSharpeFromPrices(prices, 0.02)
	fromReturns := RealizedSharpe(Returns(prices), 0.02, 252)
	if fromPrices == nil || fromReturns == nil {
		t.Fatal("expected sharpe values")
	}
	if *fromPrices != *fromReturns {
		t.Errorf("price and return paths disagree: %f vs %f", *fromPrices, *fromReturns)
	}
}

func TestRealizedMaxDrawdown(t *testing.T) {
	if got := RealizedMaxDrawdown([]float64{100}); got != nil {
		t.Errorf("expected nil for a single price, got %f", *got)
	}

	// Peak 120, trough 90: drawdown 25%
	prices := []float64{100, 120, 90, 110}
	got := RealizedMaxDrawdown(prices)
	if got == nil {
		t.Fatal("expected a drawdown value")
	}
	if math.Abs(*got-0.25) > 1e-9 {
		t.Errorf("RealizedMaxDrawdown = %f, want 0.25", *got)
	}

	// Monotonically rising series never draws down
	rising := []float64{100, 101, 102, 103}
	got = RealizedMaxDrawdown(rising)
	if got == nil || *got != 0 {
		t.Errorf("expected zero drawdown for a rising series, got %v", got)
	}
}

func TestRSI(t *testing.T) {
	if got := RSI([]float64{100, 101, 102}, 14); got != nil {
		t.Errorf("expected nil for a short series, got %f", *got)
	}

	// Strictly rising closes push RSI to the top of its range
	rising := make([]float64, 30)
	for i := range rising {
		rising[i] = 100 + float64(i)
	}
	got := RSI(rising, 14)
	if got == nil {
		t.Fatal("expected an RSI value")
	}
	if *got < 95 || *got > 100 {
		t.Errorf("RSI of a strictly rising series = %f, want near 100", *got)
	}

	// Strictly falling closes push RSI to the bottom
	falling := make([]float64, 30)
	for i := range falling {
		falling[i] = 200 - float64(i)
	}
	got = RSI(falling, 14)
	if got == nil {
		t.Fatal("expected an RSI value")
	}
	if *got > 5 {
		t.Errorf("RSI of a strictly falling series = %f, want near 0", *got)
	}
}
