package portfolio

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphaforge/forge/internal/database"
	"github.com/alphaforge/forge/internal/domain"
)

func testRepo(t *testing.T) *PositionRepository {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	return NewPositionRepository(db.Conn(), zerolog.Nop())
}

func TestPositionCRUD(t *testing.T) {
	repo := testRepo(t)

	created, err := repo.Create(domain.Position{
		Ticker: "AAPL", Shares: 100, AvgPrice: 175.50, Sector: "Technology", Type: domain.AssetStock,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got.Ticker)
	assert.Equal(t, 100.0, got.Shares)
	assert.Equal(t, domain.AssetStock, got.Type)
	assert.False(t, got.LastUpdated.IsZero())

	got.Shares = 150
	require.NoError(t, repo.Update(got))

	updated, err := repo.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Shares)

	require.NoError(t, repo.Delete(created.ID))
	_, err = repo.Get(created.ID)
	assert.Error(t, err)
}

func TestUpdateAndDelete_MissingPosition(t *testing.T) {
	repo := testRepo(t)

	err := repo.Update(domain.Position{ID: 999, Ticker: "GHOST", Shares: 1, AvgPrice: 1})
	assert.Error(t, err)

	assert.Error(t, repo.Delete(999))
}

func TestList_InsertionOrder(t *testing.T) {
	repo := testRepo(t)

	for _, ticker := range []string{"ZZZ", "AAA", "MMM"} {
		_, err := repo.Create(domain.Position{Ticker: ticker, Shares: 1, AvgPrice: 10})
		require.NoError(t, err)
	}

	positions, err := repo.List()
	require.NoError(t, err)
	require.Len(t, positions, 3)
	assert.Equal(t, "ZZZ", positions[0].Ticker)
	assert.Equal(t, "AAA", positions[1].Ticker)
	assert.Equal(t, "MMM", positions[2].Ticker)
}

func TestUpdatePrice_HitsAllLots(t *testing.T) {
	repo := testRepo(t)

	// Duplicate tickers are independent lots; a price update touches both
	_, err := repo.Create(domain.Position{Ticker: "VTI", Shares: 10, AvgPrice: 200})
	require.NoError(t, err)
	_, err = repo.Create(domain.Position{Ticker: "VTI", Shares: 5, AvgPrice: 215})
	require.NoError(t, err)

	require.NoError(t, repo.UpdatePrice("VTI", 221.40))

	positions, err := repo.List()
	require.NoError(t, err)
	require.Len(t, positions, 2)
	for _, pos := range positions {
		assert.Equal(t, 221.40, pos.CurrentPrice)
	}
}

func TestTickers_Distinct(t *testing.T) {
	repo := testRepo(t)

	for _, ticker := range []string{"VTI", "AAPL", "VTI"} {
		_, err := repo.Create(domain.Position{Ticker: ticker, Shares: 1, AvgPrice: 10})
		require.NoError(t, err)
	}

	tickers, err := repo.Tickers()
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "VTI"}, tickers)
}

func TestReplaceAll(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.Create(domain.Position{Ticker: "OLD", Shares: 1, AvgPrice: 10})
	require.NoError(t, err)

	imported := []domain.Position{
		{Ticker: "NEW1", Shares: 10, AvgPrice: 50},
		{Ticker: "NEW2", Shares: 20, AvgPrice: 60},
	}
	require.NoError(t, repo.ReplaceAll(imported))

	positions, err := repo.List()
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, "NEW1", positions[0].Ticker)
	assert.Equal(t, "NEW2", positions[1].Ticker)
}
