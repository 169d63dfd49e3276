package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"greenops-insights/internal/logger"
	"greenops-insights/internal/model"
)

// Reading store endpoints.
const (
	ReadingsPath  = "/energy-data"
	ForecastsPath = "/predictions"
)

// Store error codes.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeStoreError   = "STORE_ERROR"
)

// ErrStoreNotConfigured is returned by a StoreClient with no base URL.
var ErrStoreNotConfigured = errors.New("reading store is not configured")

// StoreClient fetches readings and forecasts from the external reading store
// on behalf of a caller, forwarding the caller's bearer token.
type StoreClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewStoreClient(baseURL string, timeout time.Duration) *StoreClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &StoreClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of c that authenticates as token.
func (c *StoreClient) WithToken(token string) *StoreClient {
	cp := *c
	cp.Token = token
	return &cp
}

// StoreError represents a non-2xx response from the reading store.
type StoreError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *StoreError) Error() string {
	return e.Message
}

func (c *StoreClient) FetchReadings(ctx context.Context, branchID string) ([]model.RawReading, error) {
	raw, err := c.get(ctx, ReadingsPath, branchID)
	if err != nil {
		return nil, err
	}
	out, err := DecodeReadings(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode readings: %w", err)
	}
	logger.Debug("store readings fetched", "branch_id", branchID, "count", len(out))
	return out, nil
}

func (c *StoreClient) FetchForecasts(ctx context.Context, branchID string) ([]model.RawForecast, error) {
	raw, err := c.get(ctx, ForecastsPath, branchID)
	if err != nil {
		return nil, err
	}
	out, err := DecodeForecasts(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode forecasts: %w", err)
	}
	logger.Debug("store forecasts fetched", "branch_id", branchID, "count", len(out))
	return out, nil
}

func (c *StoreClient) get(ctx context.Context, path, branchID string) ([]byte, error) {
	if c == nil || c.BaseURL == "" {
		return nil, ErrStoreNotConfigured
	}
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if branchID != "" {
		q := u.Query()
		q.Set("branch_id", branchID)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(start)
	if err != nil {
		logger.Warn("store request failed", "path", path, "error", err, "duration", duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("store response", "path", path, "status", resp.StatusCode, "duration", duration)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func statusError(resp *http.Response) *StoreError {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &StoreError{
			StatusCode: resp.StatusCode,
			Code:       CodeUnauthorized,
			Message:    "Reading store rejected the credentials",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return &StoreError{
			StatusCode: resp.StatusCode,
			Code:       CodeRateLimited,
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return &StoreError{
			StatusCode: resp.StatusCode,
			Code:       CodeStoreError,
			Message:    fmt.Sprintf("Reading store returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}
}
