package portfolio

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// SnapshotRepository stores daily portfolio value snapshots
type SnapshotRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB, log zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		db:  db,
		log: log.With().Str("repo", "snapshot").Logger(),
	}
}

// Upsert writes the snapshot for its date, replacing any existing row
func (r *SnapshotRepository) Upsert(snap Snapshot) error {
	_, err := r.db.Exec(`
		INSERT INTO snapshots (date, total_value, cost_basis, unrealized_pnl, position_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			total_value = excluded.total_value,
			cost_basis = excluded.cost_basis,
			unrealized_pnl = excluded.unrealized_pnl,
			position_count = excluded.position_count
	`, snap.Date, snap.TotalValue, snap.CostBasis, snap.UnrealizedPnL, snap.PositionCount)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

// History returns up to limit snapshots, newest first
func (r *SnapshotRepository) History(limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 90
	}

	rows, err := r.db.Query(`
		SELECT date, total_value, cost_basis, unrealized_pnl, position_count
		FROM snapshots
		ORDER BY date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.Date, &snap.TotalValue, &snap.CostBasis, &snap.UnrealizedPnL, &snap.PositionCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snapshots, nil
}
