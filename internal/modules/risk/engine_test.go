package risk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphaforge/forge/internal/domain"
	"github.com/alphaforge/forge/internal/modules/refdata"
)

func testEngine() *Engine {
	return NewEngine(refdata.Defaults())
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestAnalyze_EmptyPortfolio(t *testing.T) {
	metrics := testEngine().Analyze(nil, testRand())

	assert.Zero(t, metrics.TotalValue)
	assert.Zero(t, metrics.PortfolioBeta)
	assert.Zero(t, metrics.PortfolioVolatility)
	assert.Zero(t, metrics.SharpeRatio)
	assert.Zero(t, metrics.VaR95)
	assert.Zero(t, metrics.MaxDrawdown)
	assert.Empty(t, metrics.PositionRisks)
	assert.Empty(t, metrics.SectorConcentration)
	assert.Empty(t, metrics.Correlations.Labels)
	assert.Empty(t, metrics.Correlations.Values)
}

func TestAnalyze_SinglePosition(t *testing.T) {
	positions := []domain.Position{
		{Ticker: "AAPL", Shares: 100, AvgPrice: 175.50, CurrentPrice: 185.25, Sector: "Technology"},
	}

	metrics := testEngine().Analyze(positions, testRand())

	// Single position carries the whole portfolio
	require.Len(t, metrics.PositionRisks, 1)
	assert.InDelta(t, 100, metrics.PositionRisks[0].Weight, 1e-9)
	assert.InDelta(t, 1.20, metrics.PositionRisks[0].Beta, 1e-9)
	assert.InDelta(t, 1.20, metrics.PortfolioBeta, 1e-9)
	assert.InDelta(t, 18.0, metrics.PortfolioVolatility, 1e-9)

	require.Len(t, metrics.SectorConcentration, 1)
	assert.Equal(t, "Technology", metrics.SectorConcentration[0].Sector)
	assert.InDelta(t, 100, metrics.SectorConcentration[0].Weight, 1e-9)
	assert.Equal(t, RiskExtreme, metrics.SectorConcentration[0].RiskLevel)

	assert.InDelta(t, 100*185.25, metrics.TotalValue, 1e-9)
}

func TestAnalyze_WeightsSumTo100(t *testing.T) {
	positions := []domain.Position{
		{Ticker: "AAPL", Shares: 10, AvgPrice: 150, CurrentPrice: 180, Sector: "Technology"},
		{Ticker: "JNJ", Shares: 25, AvgPrice: 160, CurrentPrice: 155, Sector: "Healthcare"},
		{Ticker: "XOM", Shares: 40, AvgPrice: 100, CurrentPrice: 110, Sector: "Energy"},
		{Ticker: "UNKNOWN", Shares: 5, AvgPrice: 50, CurrentPrice: 0, Sector: "Other"},
	}

	metrics := testEngine().Analyze(positions, testRand())

	weightSum := 0.0
	for _, pr := range metrics.PositionRisks {
		weightSum += pr.Weight
	}
	assert.InDelta(t, 100, weightSum, 1e-9)

	sectorSum := 0.0
	for _, sc := range metrics.SectorConcentration {
		sectorSum += sc.Weight
	}
	assert.InDelta(t, 100, sectorSum, 1e-9)
}

func TestAnalyze_UnknownTickerGetsDefaultBeta(t *testing.T) {
	positions := []domain.Position{
		{Ticker: "ZZZZ", Shares: 1, AvgPrice: 100, CurrentPrice: 100, Sector: "Other"},
	}

	metrics := testEngine().Analyze(positions, testRand())

	require.Len(t, metrics.PositionRisks, 1)
	assert.Equal(t, refdata.DefaultBeta, metrics.PositionRisks[0].Beta)
}

func TestAnalyze_MissingQuoteFallsBackToCost(t *testing.T) {
	positions := []domain.Position{
		{Ticker: "MSFT", Shares: 10, AvgPrice: 300, CurrentPrice: 0, Sector: "Technology"},
	}

	metrics := testEngine().Analyze(positions, testRand())

	assert.InDelta(t, 3000, metrics.TotalValue, 1e-9)
}

func TestAnalyze_VaRAndDrawdown(t *testing.T) {
	positions := []domain.Position{
		{Ticker: "SPY", Shares: 10, AvgPrice: 400, CurrentPrice: 500, Sector: "Index"},
	}

	metrics := testEngine().Analyze(positions, testRand())

	// SPY beta 1.0: volatility 15, VaR = 5000 * 0.15 * 1.65
	assert.InDelta(t, 15.0, metrics.PortfolioVolatility, 1e-9)
	assert.InDelta(t, 5000*0.15*1.65, metrics.VaR95, 1e-9)
	assert.InDelta(t, -22.5, metrics.MaxDrawdown, 1e-9)

	// Sharpe = (1.0*10 - 2) / 15
	assert.InDelta(t, 8.0/15.0, metrics.SharpeRatio, 1e-9)
}

func TestClassifyConcentration(t *testing.T) {
	tests := []struct {
		weight   float64
		expected RiskLevel
	}{
		{10, RiskLow},
		{25, RiskLow},
		{25.1, RiskModerate},
		{40, RiskModerate},
		{40.1, RiskHigh},
		{60, RiskHigh},
		{60.1, RiskExtreme},
		{100, RiskExtreme},
	}

	for _, tt := range tests {
		if got := classifyConcentration(tt.weight); got != tt.expected {
			t.Errorf("classifyConcentration(%.1f) = %s, want %s", tt.weight, got, tt.expected)
		}
	}
}

func TestClassifyConcentration_MonotonicInWeight(t *testing.T) {
	rank := map[RiskLevel]int{RiskLow: 0, RiskModerate: 1, RiskHigh: 2, RiskExtreme: 3}

	prev := RiskLow
	for w := 0.0; w <= 100; w += 0.5 {
		cur := classifyConcentration(w)
		if rank[cur] < rank[prev] {
			t.Fatalf("risk tier decreased from %s to %s at weight %.1f", prev, cur, w)
		}
		prev = cur
	}
}

func TestAnalyze_SectorConcentrationSorted(t *testing.T) {
	positions := []domain.Position{
		{Ticker: "A", Shares: 1, AvgPrice: 100, CurrentPrice: 100, Sector: "Small"},
		{Ticker: "B", Shares: 1, AvgPrice: 900, CurrentPrice: 900, Sector: "Big"},
		{Ticker: "C", Shares: 1, AvgPrice: 500, CurrentPrice: 500, Sector: "Mid"},
	}

	metrics := testEngine().Analyze(positions, testRand())

	require.Len(t, metrics.SectorConcentration, 3)
	assert.Equal(t, "Big", metrics.SectorConcentration[0].Sector)
	assert.Equal(t, "Mid", metrics.SectorConcentration[1].Sector)
	assert.Equal(t, "Small", metrics.SectorConcentration[2].Sector)
}

func TestCorrelationMatrix_Properties(t *testing.T) {
	positions := []domain.Position{
		{Ticker: "AAPL", Shares: 1, AvgPrice: 100, CurrentPrice: 100, Sector: "Technology"},
		{Ticker: "MSFT", Shares: 1, AvgPrice: 100, CurrentPrice: 100, Sector: "Technology"},
		{Ticker: "XOM", Shares: 1, AvgPrice: 100, CurrentPrice: 100, Sector: "Energy"},
	}

	metrics := testEngine().Analyze(positions, testRand())
	corr := metrics.Correlations

	require.Equal(t, []string{"AAPL", "MSFT", "XOM"}, corr.Labels)
	require.Len(t, corr.Values, 3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 1.0, corr.Values[i][i], "diagonal must be 1")
		for j := 0; j < 3; j++ {
			assert.Equal(t, corr.Values[i][j], corr.Values[j][i], "matrix must be symmetric")
		}
	}

	// Same sector: [0.7, 0.9). Different sectors: [0.3, 0.6).
	sameSector := corr.Values[0][1]
	assert.GreaterOrEqual(t, sameSector, 0.7)
	assert.Less(t, sameSector, 0.9)

	crossSector := corr.Values[0][2]
	assert.GreaterOrEqual(t, crossSector, 0.3)
	assert.Less(t, crossSector, 0.6)
}

func TestCorrelationMatrix_ReproducibleWithSeed(t *testing.T) {
	positions := []domain.Position{
		{Ticker: "AAPL", Shares: 1, AvgPrice: 100, CurrentPrice: 100, Sector: "Technology"},
		{Ticker: "XOM", Shares: 1, AvgPrice: 100, CurrentPrice: 100, Sector: "Energy"},
	}

	first := testEngine().Analyze(positions, rand.New(rand.NewSource(7)))
	second := testEngine().Analyze(positions, rand.New(rand.NewSource(7)))

	assert.Equal(t, first.Correlations, second.Correlations)
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	positions := []domain.Position{
		{Ticker: "AAPL", Shares: 100, AvgPrice: 175.50, CurrentPrice: 185.25, Sector: "Technology"},
	}
	original := positions[0]

	testEngine().Analyze(positions, testRand())

	if positions[0] != original {
		t.Error("Analyze mutated its input")
	}
}

func TestAnalyze_ContributionsSumToBeta(t *testing.T) {
	positions := []domain.Position{
		{Ticker: "AAPL", Shares: 3, AvgPrice: 150, CurrentPrice: 170, Sector: "Technology"},
		{Ticker: "TSLA", Shares: 2, AvgPrice: 250, CurrentPrice: 200, Sector: "Automotive"},
		{Ticker: "KO", Shares: 50, AvgPrice: 55, CurrentPrice: 60, Sector: "Consumer"},
	}

	metrics := testEngine().Analyze(positions, testRand())

	sum := 0.0
	for _, pr := range metrics.PositionRisks {
		sum += pr.Contribution
	}
	if math.Abs(sum-metrics.PortfolioBeta) > 1e-9 {
		t.Errorf("contributions sum to %.6f, portfolio beta is %.6f", sum, metrics.PortfolioBeta)
	}
}
