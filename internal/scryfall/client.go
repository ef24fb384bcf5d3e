package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://api.scryfall.com"
	DefaultUserAgent = "ScryApp/1.0"
)

// Client performs named card lookups against the Scryfall API.
// A client-side rate limiter keeps request pacing within what the
// API asks of integrations.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
}

// Options configures a Client; zero values fall back to defaults
type Options struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// NewClient creates a Scryfall API client
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 10
	}
	if opts.Burst == 0 {
		opts.Burst = 1
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		userAgent:  opts.UserAgent,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
	}
}

// apiError is the error body Scryfall returns alongside non-200 statuses
type apiError struct {
	Details string `json:"details"`
}

// CardNamed looks up a single card by name. With fuzzy set, partial and
// approximate names are accepted; otherwise the name must match exactly.
//
// An empty or whitespace-only name fails with ErrEmptyQuery before any
// request is dispatched. A 404 response maps to ErrNotFound; transport
// failures and malformed responses map to ErrUnavailable.
func (c *Client) CardNamed(ctx context.Context, name string, fuzzy bool) (*Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyQuery
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	params := url.Values{}
	if fuzzy {
		params.Set("fuzzy", name)
	} else {
		params.Set("exact", name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cards/named?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var card Card
		if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
			return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
		}
		return &card, nil
	case http.StatusNotFound:
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Details != "" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, apiErr.Details)
		}
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}
}
