package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/alphaforge/forge/internal/modules/portfolio"
	"github.com/alphaforge/forge/internal/modules/refdata"
)

// DividendEvent is an upcoming ex-dividend date for a held position
type DividendEvent struct {
	Ticker          string  `json:"ticker"`
	ExDate          string  `json:"ex_date"` // YYYY-MM-DD
	PerShare        float64 `json:"per_share"`
	Shares          float64 `json:"shares"`
	ProjectedIncome float64 `json:"projected_income"`
	Yield           float64 `json:"yield"`
}

// EarningsEvent is an upcoming earnings report for a held position
type EarningsEvent struct {
	Ticker string `json:"ticker"`
	Date   string `json:"date"`   // YYYY-MM-DD
	Timing string `json:"timing"` // BMO or AMC
}

// Service builds dividend and earnings calendars for the current holdings
// from the bundled reference tables.
type Service struct {
	positionRepo *portfolio.PositionRepository
	ref          *refdata.Tables
	log          zerolog.Logger
}

// NewService creates a calendar service
func NewService(positionRepo *portfolio.PositionRepository, ref *refdata.Tables, log zerolog.Logger) *Service {
	return &Service{
		positionRepo: positionRepo,
		ref:          ref,
		log:          log.With().Str("service", "calendar").Logger(),
	}
}

// UpcomingDividends returns the next ex-dividend date per held ticker with a
// known dividend schedule, sorted by date. Duplicate tickers aggregate their
// share counts, since the payout depends only on total shares held.
func (s *Service) UpcomingDividends(now time.Time) ([]DividendEvent, error) {
	positions, err := s.positionRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load positions: %w", err)
	}

	sharesByTicker := make(map[string]float64)
	for _, pos := range positions {
		sharesByTicker[pos.Ticker] += pos.Shares
	}

	events := []DividendEvent{}
	for ticker, shares := range sharesByTicker {
		div, ok := s.ref.Dividend(ticker)
		if !ok {
			continue
		}

		exDate, ok := nextExDate(div, now)
		if !ok {
			continue
		}

		// Quarterly payers distribute the annual amount across their ex months
		perShare := div.AnnualPerShr
		if len(div.ExMonths) > 0 {
			perShare = div.AnnualPerShr / float64(len(div.ExMonths))
		}

		events = append(events, DividendEvent{
			Ticker:          ticker,
			ExDate:          exDate.Format("2006-01-02"),
			PerShare:        perShare,
			Shares:          shares,
			ProjectedIncome: perShare * shares,
			Yield:           div.Yield,
		})
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].ExDate != events[j].ExDate {
			return events[i].ExDate < events[j].ExDate
		}
		return events[i].Ticker < events[j].Ticker
	})

	return events, nil
}

// UpcomingEarnings returns the next earnings date per held ticker with a
// known schedule, sorted by date.
func (s *Service) UpcomingEarnings(now time.Time) ([]EarningsEvent, error) {
	tickers, err := s.positionRepo.Tickers()
	if err != nil {
		return nil, fmt.Errorf("failed to load tickers: %w", err)
	}

	events := []EarningsEvent{}
	for _, ticker := range tickers {
		earn, ok := s.ref.Earnings(ticker)
		if !ok {
			continue
		}

		date := time.Date(now.Year(), time.Month(earn.Month), earn.Day, 0, 0, 0, 0, time.UTC)
		if date.Before(now) {
			date = date.AddDate(1, 0, 0)
		}

		events = append(events, EarningsEvent{
			Ticker: ticker,
			Date:   date.Format("2006-01-02"),
			Timing: earn.Timing,
		})
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Ticker < events[j].Ticker
	})

	return events, nil
}

// nextExDate finds the first ex-dividend date on or after now
func nextExDate(div refdata.Dividend, now time.Time) (time.Time, bool) {
	if len(div.ExMonths) == 0 {
		return time.Time{}, false
	}

	var best time.Time
	found := false
	for yearOffset := 0; yearOffset <= 1; yearOffset++ {
		for _, month := range div.ExMonths {
			candidate := time.Date(now.Year()+yearOffset, time.Month(month), div.ExDay, 0, 0, 0, 0, time.UTC)
			if candidate.Before(now) {
				continue
			}
			if !found || candidate.Before(best) {
				best = candidate
				found = true
			}
		}
		if found {
			break
		}
	}

	return best, found
}
