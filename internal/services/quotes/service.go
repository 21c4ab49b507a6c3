package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/alphaforge/forge/internal/domain"
	"github.com/alphaforge/forge/internal/modules/history"
	"github.com/alphaforge/forge/internal/modules/portfolio"
)

// Provider is a quote API. Alpha Vantage is the primary, Finnhub the fallback.
type Provider interface {
	Name() string
	GetQuote(ctx context.Context, symbol string) (domain.Quote, error)
}

// SyncResult summarizes one sync pass
type SyncResult struct {
	Requested int       `json:"requested"`
	Updated   int       `json:"updated"`
	Failed    int       `json:"failed"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
}

// Service refreshes live prices for all held tickers. Outbound calls share a
// token-bucket limiter so a large portfolio cannot blow through the providers'
// free-tier quotas. A ticker that fails both providers keeps its previous
// price; positions that never got a quote stay on cost-basis valuation.
type Service struct {
	primary      Provider
	fallback     Provider
	limiter      *rate.Limiter
	positionRepo *portfolio.PositionRepository
	quoteRepo    *Repository
	historyStore *history.Store
	log          zerolog.Logger
}

// NewService creates a quote sync service. ratePerMin bounds outbound calls
// across both providers combined.
func NewService(
	primary Provider,
	fallback Provider,
	ratePerMin int,
	positionRepo *portfolio.PositionRepository,
	quoteRepo *Repository,
	historyStore *history.Store,
	log zerolog.Logger,
) *Service {
	return &Service{
		primary:      primary,
		fallback:     fallback,
		limiter:      rate.NewLimiter(rate.Limit(float64(ratePerMin)/60.0), 1),
		positionRepo: positionRepo,
		quoteRepo:    quoteRepo,
		historyStore: historyStore,
		log:          log.With().Str("service", "quotes").Logger(),
	}
}

// SyncAll refreshes prices for every distinct held ticker
func (s *Service) SyncAll(ctx context.Context) (SyncResult, error) {
	start := time.Now()

	tickers, err := s.positionRepo.Tickers()
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to load tickers: %w", err)
	}

	result := SyncResult{Requested: len(tickers), StartedAt: start.UTC()}
	for _, ticker := range tickers {
		if err := s.limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("sync cancelled: %w", err)
		}

		quote, err := s.fetchWithFallback(ctx, ticker)
		if err != nil {
			result.Failed++
			s.log.Warn().Err(err).Str("ticker", ticker).Msg("No provider returned a quote, keeping previous price")
			continue
		}

		if err := s.store(quote); err != nil {
			result.Failed++
			s.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to store quote")
			continue
		}
		result.Updated++
	}

	result.Duration = time.Since(start).Round(time.Millisecond).String()
	s.log.Info().
		Int("requested", result.Requested).
		Int("updated", result.Updated).
		Int("failed", result.Failed).
		Str("duration", result.Duration).
		Msg("Quote sync finished")

	return result, nil
}

// fetchWithFallback tries the primary provider, then the fallback
func (s *Service) fetchWithFallback(ctx context.Context, ticker string) (domain.Quote, error) {
	quote, primaryErr := s.primary.GetQuote(ctx, ticker)
	if primaryErr == nil {
		return quote, nil
	}

	if ctx.Err() != nil {
		return domain.Quote{}, ctx.Err()
	}

	s.log.Debug().Err(primaryErr).
		Str("ticker", ticker).
		Str("provider", s.primary.Name()).
		Msg("Primary provider failed, trying fallback")

	quote, fallbackErr := s.fallback.GetQuote(ctx, ticker)
	if fallbackErr == nil {
		return quote, nil
	}

	return domain.Quote{}, fmt.Errorf("%s: %v; %s: %w", s.primary.Name(), primaryErr, s.fallback.Name(), fallbackErr)
}

// store writes the quote to positions, the quote cache and price history
func (s *Service) store(quote domain.Quote) error {
	if err := s.positionRepo.UpdatePrice(quote.Ticker, quote.Price); err != nil {
		return err
	}
	if err := s.quoteRepo.Upsert(quote); err != nil {
		return err
	}

	day := quote.FetchedAt.Format("2006-01-02")
	if err := s.historyStore.Append(quote.Ticker, day, quote.Price); err != nil {
		// History is an enrichment; a failed append should not fail the sync
		s.log.Warn().Err(err).Str("ticker", quote.Ticker).Msg("Failed to append price history")
	}

	return nil
}
