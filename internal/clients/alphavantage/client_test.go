package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) *Client {
	c := NewClient("test-key", zerolog.Nop())
	c.baseURL = serverURL
	return c
}

const quotePayload = `{
	"Global Quote": {
		"01. symbol": "AAPL",
		"05. price": "185.2500",
		"09. change": "1.2000",
		"10. change percent": "0.6500%"
	}
}`

func TestFetchQuote_Parses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Write([]byte(quotePayload))
	}))
	defer server.Close()

	quote, err := testClient(server.URL).fetchQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Ticker)
	assert.Equal(t, 185.25, quote.Price)
	assert.Equal(t, 1.20, quote.Change)
	assert.Equal(t, 0.65, quote.ChangePercent)
	assert.Equal(t, "alphavantage", quote.Provider)
}

func TestFetchQuote_RateLimitNote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Throttling arrives as a 200 with a Note instead of a quote
		w.Write([]byte(`{"Note": "API call frequency is 5 calls per minute"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).fetchQuote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestFetchQuote_MissingPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Global Quote": {}}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).fetchQuote(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid price")
}

func TestGetQuote_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(quotePayload))
	}))
	defer server.Close()

	quote, err := testClient(server.URL).GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 185.25, quote.Price)
	assert.Equal(t, int32(2), calls.Load())
}
