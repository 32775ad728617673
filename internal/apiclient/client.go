package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"animeschedule/config"
	"animeschedule/internal/models"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	CacheTTL   time.Duration
	RateLimit  float64
	RateBurst  int
	Now        func() time.Time
}

// Client dispatches GET requests to the upstream API, serving fresh
// responses from its cache and normalizing envelope failures.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *ResponseCache
	limiter    *rate.Limiter
	group      singleflight.Group
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://www.sankavollerei.com/anime/samehadaku"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		cache:      NewResponseCache(opts.CacheTTL, opts.Now),
		limiter:    rate.NewLimiter(limit, burst),
	}
}

func NewClientFromConfig(cfg *config.Config) *Client {
	return NewClient(Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.RequestTimeout(),
		CacheTTL:  cfg.CacheTTL(),
		RateLimit: cfg.APIRateLimit,
		RateBurst: cfg.APIRateBurst,
	})
}

// Fetch returns the envelope for endpoint (path plus query, used verbatim
// as the cache key). Failures are *NetworkError or *DomainError and are
// never cached.
func (c *Client) Fetch(ctx context.Context, endpoint string) (*models.Envelope, error) {
	if entry, ok := c.cache.Get(endpoint); ok {
		return entry.Payload, nil
	}

	// Overlapping misses for the same key share one upstream call. The shared
	// call is detached from any one caller's cancellation; each caller only
	// stops waiting when its own ctx is done.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(endpoint, func() (interface{}, error) {
		return c.fetchRemote(shared, endpoint)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Envelope), nil
	case <-ctx.Done():
		return nil, &NetworkError{Endpoint: endpoint, Err: ctx.Err()}
	}
}

// FetchData fetches endpoint and decodes the envelope data into dest.
func (c *Client) FetchData(ctx context.Context, endpoint string, dest any) (*models.Envelope, error) {
	env, err := c.Fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if err := env.DecodeData(dest); err != nil {
		return env, fmt.Errorf("%s: %w", endpoint, err)
	}
	return env, nil
}

func (c *Client) fetchRemote(ctx context.Context, endpoint string) (*models.Envelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	url := c.baseURL + endpoint
	log.Printf("Fetching %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Upstream returned status %d for %s", resp.StatusCode, endpoint)
		return nil, &NetworkError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	var env models.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if !env.Succeeded() {
		message := env.Message
		if message == "" {
			message = fallbackDomainMessage
		}
		log.Printf("Upstream reported failure for %s: %s", endpoint, message)
		return nil, &DomainError{Endpoint: endpoint, Message: message}
	}

	c.cache.Set(endpoint, &env)
	return &env, nil
}

// ClearCache drops every cached response.
func (c *Client) ClearCache() {
	c.cache.Clear()
	log.Printf("Response cache cleared")
}

func (c *Client) CacheStats() CacheStats {
	return c.cache.Stats()
}

func (c *Client) Cache() *ResponseCache {
	return c.cache
}
