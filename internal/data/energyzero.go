package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"battery-sim-data/internal/metrics"
)

// EnergyZero REST API query parameters for hourly electricity market prices
// excluding VAT.
const (
	paramHourly      = "4"
	paramElectricity = "1"
)

// utcLayout is the timestamp format the API expects for fromDate/tillDate.
const utcLayout = "2006-01-02T15:04:05.000Z"

// RawPrice is one record as returned by the service. The price is in
// EUR/kWh; readingDate is the UTC start of the hour the price applies to.
type RawPrice struct {
	Price       float64   `json:"price"`
	ReadingDate time.Time `json:"readingDate"`
}

// PriceResponse matches the JSON shape of /v1/energyprices.
type PriceResponse struct {
	Prices []RawPrice `json:"Prices"`
}

// EnergyZeroError represents an error response from the EnergyZero API.
type EnergyZeroError struct {
	StatusCode int
	Message    string
	RetryAfter string // for rate limit errors
}

func (e *EnergyZeroError) Error() string {
	return fmt.Sprintf("energyzero api error %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether the error should trigger a retry.
func (e *EnergyZeroError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// EnergyZeroClient fetches hourly spot prices from the EnergyZero REST API.
// No state is shared between calls; one client serves any number of years.
type EnergyZeroClient struct {
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger

	MaxRetries   int
	RetryBackoff time.Duration
}

// NewEnergyZeroClient creates a client. If baseURL is empty, it defaults to
// the public API endpoint.
func NewEnergyZeroClient(baseURL string) *EnergyZeroClient {
	if baseURL == "" {
		baseURL = "https://api.energyzero.nl"
	}
	return &EnergyZeroClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		Logger:       slog.Default(),
		MaxRetries:   3,
		RetryBackoff: time.Second,
	}
}

// FetchPrices requests hourly prices for the UTC instants [from, till].
// Transient failures (429, 5xx, transport errors) are retried with bounded
// exponential backoff and jitter; anything else is returned immediately.
func (c *EnergyZeroClient) FetchPrices(ctx context.Context, from, till time.Time) (*PriceResponse, error) {
	if !from.Before(till) {
		return nil, fmt.Errorf("from %s must be before till %s", from, till)
	}

	if cache := GetCache(); cache != nil {
		key := CacheKey(from, till)
		if cached, found := cache.Get(key); found {
			c.Logger.Debug("cache hit", "from", from, "till", till, "records", len(cached.Prices))
			return cached, nil
		}
	}

	u, err := url.Parse(c.BaseURL + "/v1/energyprices")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("fromDate", from.UTC().Format(utcLayout))
	q.Set("tillDate", till.UTC().Format(utcLayout))
	q.Set("interval", paramHourly)
	q.Set("usageType", paramElectricity)
	q.Set("inclBtw", "false")
	u.RawQuery = q.Encode()

	resp, err := c.doWithRetry(ctx, u.String())
	if err != nil {
		return nil, err
	}

	if cache := GetCache(); cache != nil {
		cache.Set(CacheKey(from, till), resp)
	}
	return resp, nil
}

// doWithRetry performs the request with exponential backoff on retryable
// errors. Retry counts as a new request for metrics purposes.
func (c *EnergyZeroClient) doWithRetry(ctx context.Context, fullURL string) (*PriceResponse, error) {
	var lastErr error
	backoff := c.RetryBackoff

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			// jitter: backoff * (0.5 to 1.5)
			wait := backoff/2 + time.Duration(rand.Int63n(int64(backoff)))
			c.Logger.Debug("retrying request", "attempt", attempt, "backoff", wait)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			backoff *= 2
		}

		resp, err := c.doRequest(ctx, fullURL)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		// API errors retry only when the status says so. Anything else
		// (connection resets, timeouts) is transient and goes back around.
		var apiErr *EnergyZeroError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *EnergyZeroClient) doRequest(ctx context.Context, fullURL string) (*PriceResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		metrics.ObserveFetch(metrics.ResultError, duration)
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveFetch(metrics.ResultError, duration)
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ObserveFetch(metrics.ResultError, duration)
		c.Logger.Warn("request failed",
			"status", resp.StatusCode,
			"duration", duration,
		)
		return nil, &EnergyZeroError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			RetryAfter: resp.Header.Get("Retry-After"),
		}
	}

	var result PriceResponse
	if err := json.Unmarshal(body, &result); err != nil {
		metrics.ObserveFetch(metrics.ResultError, duration)
		return nil, fmt.Errorf("decode response: %w", err)
	}

	metrics.ObserveFetch(metrics.ResultSuccess, duration)
	c.Logger.Debug("fetched prices",
		"records", len(result.Prices),
		"duration", duration,
	)
	return &result, nil
}
