package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/alphaforge/forge/internal/domain"
)

const defaultBaseURL = "https://finnhub.io/api/v1/quote"

// Client is a Finnhub quote API client, used as the fallback provider
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	log     zerolog.Logger
}

// NewClient creates a new Finnhub client
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		log:     log.With().Str("client", "finnhub").Logger(),
	}
}

// Name identifies the provider in quote records and logs
func (c *Client) Name() string {
	return "finnhub"
}

// quoteResponse mirrors Finnhub's /quote payload
type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
}

// GetQuote fetches a live quote with retry and exponential backoff
func (c *Client) GetQuote(ctx context.Context, symbol string) (domain.Quote, error) {
	const maxRetries = 3

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		quote, err := c.fetchQuote(ctx, symbol)
		if err == nil {
			return quote, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return domain.Quote{}, ctx.Err()
		}

		if attempt < maxRetries-1 {
			waitTime := time.Duration(1<<uint(attempt)) * time.Second
			c.log.Warn().Err(err).
				Str("symbol", symbol).
				Int("attempt", attempt+1).
				Dur("wait", waitTime).
				Msg("Failed to get quote, retrying")
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return domain.Quote{}, ctx.Err()
			}
		}
	}

	return domain.Quote{}, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

// fetchQuote performs a single request. Finnhub returns zeros rather than an
// error for unknown symbols, so a zero price is treated as "no quote".
func (c *Client) fetchQuote(ctx context.Context, symbol string) (domain.Quote, error) {
	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("token", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.Quote{}, fmt.Errorf("Finnhub returned status %d: %s", resp.StatusCode, string(body))
	}

	var result quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.Quote{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Current <= 0 {
		return domain.Quote{}, fmt.Errorf("no valid price returned for symbol %s", symbol)
	}

	return domain.Quote{
		Ticker:        symbol,
		Price:         result.Current,
		Change:        result.Change,
		ChangePercent: result.ChangePercent,
		Provider:      c.Name(),
		FetchedAt:     time.Now().UTC(),
	}, nil
}
