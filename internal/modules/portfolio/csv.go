package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alphaforge/forge/internal/domain"
)

var csvHeader = []string{"ticker", "shares", "avg_price", "sector", "type"}

// WriteCSV exports positions in the dashboard's import/export format
func WriteCSV(w io.Writer, positions []domain.Position) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, pos := range positions {
		record := []string{
			pos.Ticker,
			strconv.FormatFloat(pos.Shares, 'f', -1, 64),
			strconv.FormatFloat(pos.AvgPrice, 'f', -1, 64),
			pos.Sector,
			string(pos.Type),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses positions from the import format. Current prices are not
// part of the format; imported positions start unquoted and pick up live
// prices on the next sync.
func ReadCSV(r io.Reader) ([]domain.Position, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV is empty")
	}

	// Tolerate a missing header row
	start := 0
	if strings.EqualFold(records[0][0], "ticker") {
		start = 1
	}

	var positions []domain.Position
	for i, record := range records[start:] {
		line := start + i + 1
		if len(record) < 5 {
			return nil, fmt.Errorf("line %d: expected 5 columns, got %d", line, len(record))
		}

		shares, err := strconv.ParseFloat(record[1], 64)
		if err != nil || shares <= 0 {
			return nil, fmt.Errorf("line %d: invalid shares %q", line, record[1])
		}

		avgPrice, err := strconv.ParseFloat(record[2], 64)
		if err != nil || avgPrice <= 0 {
			return nil, fmt.Errorf("line %d: invalid avg_price %q", line, record[2])
		}

		ticker := strings.ToUpper(strings.TrimSpace(record[0]))
		if ticker == "" {
			return nil, fmt.Errorf("line %d: ticker is required", line)
		}

		positions = append(positions, domain.Position{
			Ticker:   ticker,
			Shares:   shares,
			AvgPrice: avgPrice,
			Sector:   strings.TrimSpace(record[3]),
			Type:     parseAssetType(record[4]),
		})
	}

	// An import with no rows would wipe the portfolio via ReplaceAll
	if len(positions) == 0 {
		return nil, fmt.Errorf("CSV contains no positions")
	}

	return positions, nil
}

func parseAssetType(s string) domain.AssetType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crypto":
		return domain.AssetCrypto
	case "etf":
		return domain.AssetETF
	case "bond":
		return domain.AssetBond
	default:
		return domain.AssetStock
	}
}
