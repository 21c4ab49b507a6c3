package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alphaforge/forge/internal/domain"
)

const defaultBaseURL = "https://www.alphavantage.co/query"

// Client is an Alpha Vantage quote API client
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	log     zerolog.Logger
}

// NewClient creates a new Alpha Vantage client
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		log:     log.With().Str("client", "alphavantage").Logger(),
	}
}

// Name identifies the provider in quote records and logs
func (c *Client) Name() string {
	return "alphavantage"
}

// globalQuoteResponse mirrors the GLOBAL_QUOTE payload. Alpha Vantage keys
// its fields with numeric prefixes.
type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		Price         string `json:"05. price"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
	Note        string `json:"Note"`
	Information string `json:"Information"`
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

func (c *Client) fetchQuote(ctx context.Context, symbol string) (domain.Quote, error) {
	params := url.Values{}
	params.Add("function", "GLOBAL_QUOTE")
	params.Add("symbol", symbol)
	params.Add("apikey", c.apiKey)

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
		return domain.Quote{}, fmt.Errorf("Alpha Vantage returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to read response body: %w", err)
	}

	var result globalQuoteResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.Quote{}, fmt.Errorf("failed to parse response: %w", err)
	}

	// The API reports throttling as a 200 with a Note/Information field
	if result.Note != "" || result.Information != "" {
		return domain.Quote{}, fmt.Errorf("Alpha Vantage rate limited: %s%s", result.Note, result.Information)
	}

	price, err := strconv.ParseFloat(result.GlobalQuote.Price, 64)
	if err != nil || price <= 0 {
		return domain.Quote{}, fmt.Errorf("no valid price returned for symbol %s", symbol)
	}

	change, _ := strconv.ParseFloat(result.GlobalQuote.Change, 64)
	changePct, _ := strconv.ParseFloat(strings.TrimSuffix(result.GlobalQuote.ChangePercent, "%"), 64)

	return domain.Quote{
		Ticker:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePct,
		Provider:      c.Name(),
		FetchedAt:     time.Now().UTC(),
	}, nil
}
