package portfolio

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alphaforge/forge/internal/domain"
)

// PositionRepository handles position database operations
type PositionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *sql.DB, log zerolog.Logger) *PositionRepository {
	return &PositionRepository{
		db:  db,
		log: log.With().Str("repo", "position").Logger(),
	}
}

// List returns all positions in insertion order
func (r *PositionRepository) List() ([]domain.Position, error) {
	rows, err := r.db.Query(`
		SELECT id, ticker, shares, avg_price, current_price, sector, type, last_updated
		FROM positions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []domain.Position
	for rows.Next() {
		pos, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

// Get returns a single position by ID
func (r *PositionRepository) Get(id int64) (domain.Position, error) {
	row := r.db.QueryRow(`
		SELECT id, ticker, shares, avg_price, current_price, sector, type, last_updated
		FROM positions
		WHERE id = ?
	`, id)

	var pos domain.Position
	var lastUpdated string
	err := row.Scan(&pos.ID, &pos.Ticker, &pos.Shares, &pos.AvgPrice, &pos.CurrentPrice, &pos.Sector, &pos.Type, &lastUpdated)
	if err != nil {
		return domain.Position{}, fmt.Errorf("failed to get position %d: %w", id, err)
	}
	pos.LastUpdated = parseTime(lastUpdated)

	return pos, nil
}

// Create inserts a new position and returns it with its assigned ID
func (r *PositionRepository) Create(pos domain.Position) (domain.Position, error) {
	pos.LastUpdated = time.Now().UTC()

	result, err := r.db.Exec(`
		INSERT INTO positions (ticker, shares, avg_price, current_price, sector, type, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, pos.Ticker, pos.Shares, pos.AvgPrice, pos.CurrentPrice, pos.Sector, pos.Type, formatTime(pos.LastUpdated))
	if err != nil {
		return domain.Position{}, fmt.Errorf("failed to insert position: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Position{}, fmt.Errorf("failed to get insert id: %w", err)
	}
	pos.ID = id

	r.log.Debug().Str("ticker", pos.Ticker).Int64("id", id).Msg("Position created")
	return pos, nil
}

// Update replaces a position's editable fields
func (r *PositionRepository) Update(pos domain.Position) error {
	result, err := r.db.Exec(`
		UPDATE positions
		SET ticker = ?, shares = ?, avg_price = ?, sector = ?, type = ?, last_updated = ?
		WHERE id = ?
	`, pos.Ticker, pos.Shares, pos.AvgPrice, pos.Sector, pos.Type, formatTime(time.Now().UTC()), pos.ID)
	if err != nil {
		return fmt.Errorf("failed to update position %d: %w", pos.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("position %d not found", pos.ID)
	}

	return nil
}

// Delete removes a position
func (r *PositionRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM positions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete position %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("position %d not found", id)
	}

	return nil
}

// UpdatePrice sets the live price on every position holding the ticker
func (r *PositionRepository) UpdatePrice(ticker string, price float64) error {
	_, err := r.db.Exec(`
		UPDATE positions
		SET current_price = ?, last_updated = ?
		WHERE ticker = ?
	`, price, formatTime(time.Now().UTC()), ticker)
	if err != nil {
		return fmt.Errorf("failed to update price for %s: %w", ticker, err)
	}
	return nil
}

// Tickers returns the distinct tickers currently held
func (r *PositionRepository) Tickers() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT ticker FROM positions ORDER BY ticker")
	if err != nil {
		return nil, fmt.Errorf("failed to query tickers: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickers: %w", err)
	}

	return tickers, nil
}

// ReplaceAll swaps the full position set inside one transaction (CSV import)
func (r *PositionRepository) ReplaceAll(positions []domain.Position) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM positions"); err != nil {
		return fmt.Errorf("failed to clear positions: %w", err)
	}

	now := formatTime(time.Now().UTC())
	for _, pos := range positions {
		_, err := tx.Exec(`
			INSERT INTO positions (ticker, shares, avg_price, current_price, sector, type, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, pos.Ticker, pos.Shares, pos.AvgPrice, pos.CurrentPrice, pos.Sector, pos.Type, now)
		if err != nil {
			return fmt.Errorf("failed to insert position %s: %w", pos.Ticker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	r.log.Info().Int("count", len(positions)).Msg("Positions replaced via import")
	return nil
}

func scanPosition(rows *sql.Rows) (domain.Position, error) {
	var pos domain.Position
	var lastUpdated string
	err := rows.Scan(&pos.ID, &pos.Ticker, &pos.Shares, &pos.AvgPrice, &pos.CurrentPrice, &pos.Sector, &pos.Type, &lastUpdated)
	if err != nil {
		return domain.Position{}, err
	}
	pos.LastUpdated = parseTime(lastUpdated)
	return pos, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
