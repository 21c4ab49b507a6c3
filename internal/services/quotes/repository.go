package quotes

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alphaforge/forge/internal/domain"
)

// Repository caches the latest quote per ticker
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new quote repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "quotes").Logger(),
	}
}

// Upsert stores the latest quote for a ticker
func (r *Repository) Upsert(q domain.Quote) error {
	_, err := r.db.Exec(`
		INSERT INTO quotes (ticker, price, change, change_percent, provider, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			price = excluded.price,
			change = excluded.change,
			change_percent = excluded.change_percent,
			provider = excluded.provider,
			fetched_at = excluded.fetched_at
	`, q.Ticker, q.Price, q.Change, q.ChangePercent, q.Provider, q.FetchedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert quote for %s: %w", q.Ticker, err)
	}
	return nil
}

// List returns all cached quotes
func (r *Repository) List() ([]domain.Quote, error) {
	rows, err := r.db.Query(`
		SELECT ticker, price, change, change_percent, provider, fetched_at
		FROM quotes
		ORDER BY ticker
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []domain.Quote
	for rows.Next() {
		var q domain.Quote
		var fetchedAt string
		if err := rows.Scan(&q.Ticker, &q.Price, &q.Change, &q.ChangePercent, &q.Provider, &fetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
			q.FetchedAt = t
		}
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quotes: %w", err)
	}

	return quotes, nil
}
