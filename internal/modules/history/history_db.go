package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
	"github.com/rs/zerolog"
)

// Store provides access to per-symbol daily price history. Each symbol lives
// in its own SQLite file under historyDir, so a corrupt or oversized history
// never affects the main database.
type Store struct {
	historyDir string
	log        zerolog.Logger
}

// NewStore creates a price history store rooted at historyDir
func NewStore(historyDir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(historyDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Store{
		historyDir: historyDir,
		log:        log.With().Str("component", "history").Logger(),
	}, nil
}

// DailyClose is one day's closing price
type DailyClose struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Close float64 `json:"close"`
}

// Append records a closing price for a symbol, replacing any existing value
// for the same date.
func (s *Store) Append(symbol, date string, close float64) error {
	db, err := s.open(symbol)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(`
		INSERT INTO daily_prices (date, close_price)
		VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET close_price = excluded.close_price
	`, date, close)
	if err != nil {
		return fmt.Errorf("failed to append price for %s: %w", symbol, err)
	}
	return nil
}

// Closes returns up to limit closing prices for a symbol, oldest first, so
// the series feeds straight into return and volatility calculations. A symbol
// with no recorded history yields an empty slice, not an error.
func (s *Store) Closes(symbol string, limit int) ([]DailyClose, error) {
	path := s.dbPath(symbol)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return []DailyClose{}, nil
	}

	db, err := s.open(symbol)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if limit <= 0 {
		limit = 252
	}

	rows, err := db.Query(`
		SELECT date, close_price FROM (
			SELECT date, close_price
			FROM daily_prices
			ORDER BY date DESC
			LIMIT ?
		)
		ORDER BY date ASC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for %s: %w", symbol, err)
	}
	defer rows.Close()

	var closes []DailyClose
	for rows.Next() {
		var dc DailyClose
		if err := rows.Scan(&dc.Date, &dc.Close); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		closes = append(closes, dc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	if closes == nil {
		closes = []DailyClose{}
	}
	return closes, nil
}

// CloseSeries returns just the closing prices, oldest first
func (s *Store) CloseSeries(symbol string, limit int) ([]float64, error) {
	closes, err := s.Closes(symbol, limit)
	if err != nil {
		return nil, err
	}

	series := make([]float64, len(closes))
	for i, dc := range closes {
		series[i] = dc.Close
	}
	return series, nil
}

func (s *Store) open(symbol string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.dbPath(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to open history db for %s: %w", symbol, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_prices (
			date TEXT PRIMARY KEY,
			close_price REAL NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init history schema for %s: %w", symbol, err)
	}

	return db, nil
}

func (s *Store) dbPath(symbol string) string {
	// Symbols are uppercase tickers; sanitize just in case
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, strings.ToUpper(symbol))
	return filepath.Join(s.historyDir, safe+".db")
}
