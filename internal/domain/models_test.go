package domain

import "testing"

func TestPositionValue(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected float64
	}{
		{"quoted", Position{Shares: 10, AvgPrice: 100, CurrentPrice: 120}, 1200},
		{"unquoted falls back to cost", Position{Shares: 10, AvgPrice: 100, CurrentPrice: 0}, 1000},
		{"fractional shares", Position{Shares: 0.5, AvgPrice: 40000, CurrentPrice: 42000}, 21000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.Value(); got != tt.expected {
				t.Errorf("Value() = %f, want %f", got, tt.expected)
			}
		})
	}
}

func TestPositionHasQuote(t *testing.T) {
	if (Position{CurrentPrice: 0}).HasQuote() {
		t.Error("zero price should mean no quote")
	}
	if !(Position{CurrentPrice: 185.25}).HasQuote() {
		t.Error("non-zero price should mean a quote exists")
	}
}

func TestPositionCostBasis(t *testing.T) {
	pos := Position{Shares: 100, AvgPrice: 175.50}
	if got := pos.CostBasis(); got != 17550 {
		t.Errorf("CostBasis() = %f, want 17550", got)
	}
}
