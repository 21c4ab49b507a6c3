package portfolio

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/alphaforge/forge/internal/domain"
)

// Service derives portfolio roll-ups from the position store
type Service struct {
	positionRepo *PositionRepository
	snapshotRepo *SnapshotRepository
	log          zerolog.Logger
}

// NewService creates a portfolio service
func NewService(positionRepo *PositionRepository, snapshotRepo *SnapshotRepository, log zerolog.Logger) *Service {
	return &Service{
		positionRepo: positionRepo,
		snapshotRepo: snapshotRepo,
		log:          log.With().Str("service", "portfolio").Logger(),
	}
}

// GetSummary calculates the current portfolio roll-up. Positions without a
// live quote are valued at cost basis, so a fresh portfolio with no quotes
// reports zero unrealized P&L rather than a fictitious total loss.
func (s *Service) GetSummary() (Summary, error) {
	positions, err := s.positionRepo.List()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load positions: %w", err)
	}

	return BuildSummary(positions), nil
}

// BuildSummary computes the roll-up for an in-memory position list
func BuildSummary(positions []domain.Position) Summary {
	totalValue := 0.0
	costBasis := 0.0
	quoted := 0
	for _, pos := range positions {
		totalValue += pos.Value()
		costBasis += pos.CostBasis()
		if pos.HasQuote() {
			quoted++
		}
	}

	views := make([]PositionView, 0, len(positions))
	for _, pos := range positions {
		value := pos.Value()
		basis := pos.CostBasis()

		weight := 0.0
		if totalValue > 0 {
			weight = value / totalValue * 100
		}

		pnl := 0.0
		pnlPct := 0.0
		if pos.HasQuote() {
			pnl = value - basis
			if basis > 0 {
				pnlPct = pnl / basis * 100
			}
		}

		views = append(views, PositionView{
			Position:         pos,
			Value:            round2(value),
			CostBasis:        round2(basis),
			Weight:           round2(weight),
			UnrealizedPnL:    round2(pnl),
			UnrealizedPnLPct: round2(pnlPct),
		})
	}

	totalPnL := 0.0
	for _, v := range views {
		totalPnL += v.UnrealizedPnL
	}
	totalPnLPct := 0.0
	if costBasis > 0 {
		totalPnLPct = totalPnL / costBasis * 100
	}

	return Summary{
		TotalValue:       round2(totalValue),
		CostBasis:        round2(costBasis),
		UnrealizedPnL:    round2(totalPnL),
		UnrealizedPnLPct: round2(totalPnLPct),
		PositionCount:    len(positions),
		QuotedCount:      quoted,
		Positions:        views,
	}
}

// TakeSnapshot records today's portfolio value. Called by the daily cron job;
// idempotent for a given day.
func (s *Service) TakeSnapshot() error {
	summary, err := s.GetSummary()
	if err != nil {
		return err
	}

	snap := Snapshot{
		Date:          time.Now().UTC().Format("2006-01-02"),
		TotalValue:    summary.TotalValue,
		CostBasis:     summary.CostBasis,
		UnrealizedPnL: summary.UnrealizedPnL,
		PositionCount: summary.PositionCount,
	}

	if err := s.snapshotRepo.Upsert(snap); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	s.log.Info().Str("date", snap.Date).Float64("total_value", snap.TotalValue).Msg("Snapshot recorded")
	return nil
}

// GetHistory returns recent snapshots, newest first
func (s *Service) GetHistory(limit int) ([]Snapshot, error) {
	return s.snapshotRepo.History(limit)
}

func round2(val float64) float64 {
	return math.Round(val*100) / 100
}
