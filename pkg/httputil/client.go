package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/wonny/swingtrader/pkg/config"
	"github.com/wonny/swingtrader/pkg/logger"
	"github.com/wonny/swingtrader/pkg/redis"
)

// DefaultUserAgent is sent on every request; several feeds reject Go's default agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// ErrStatus is returned by the JSON/body helpers on non-2xx responses
var ErrStatus = errors.New("unexpected HTTP status")

// Client is an HTTP client wrapper with retry logic and logging
// ⭐ SSOT: 모든 HTTP 요청은 이 클라이언트를 통해서만 수행
type Client struct {
	httpClient   *http.Client
	logger       *logger.Logger
	userAgent    string
	retryConfig  RetryConfig
	limiter      *rate.Limiter
	rateLimiter  *redis.RateLimiter
	rateLimitCfg *redis.RateLimitConfig
}

// RetryConfig holds retry configuration
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Enabled      bool
}

// New creates a new HTTP client from config
// ⭐ SSOT: http.Client 인스턴스는 여기서만 생성
func New(cfg *config.Config, log *logger.Logger) *Client {
	timeout := cfg.Market.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
		userAgent:  DefaultUserAgent,
		retryConfig: RetryConfig{
			MaxRetries:   2,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Enabled:      true,
		},
	}
}

// NewWithTimeout creates a client with custom timeout
func NewWithTimeout(cfg *config.Config, log *logger.Logger, timeout time.Duration) *Client {
	client := New(cfg, log)
	client.httpClient.Timeout = timeout
	return client
}

// WithRetry configures retry behavior
func (c *Client) WithRetry(maxRetries int, initialDelay time.Duration) *Client {
	c.retryConfig.MaxRetries = maxRetries
	c.retryConfig.InitialDelay = initialDelay
	c.retryConfig.Enabled = true
	return c
}

// DisableRetry disables automatic retry
func (c *Client) DisableRetry() *Client {
	c.retryConfig.Enabled = false
	return c
}

// WithLimiter throttles requests in-process (per client)
func (c *Client) WithLimiter(limiter *rate.Limiter) *Client {
	c.limiter = limiter
	return c
}

// WithRateLimiter sets the shared Redis rate limiter for this client
func (c *Client) WithRateLimiter(limiter *redis.RateLimiter, cfg redis.RateLimitConfig) *Client {
	c.rateLimiter = limiter
	c.rateLimitCfg = &cfg
	return c
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	return c.do(req)
}

// GetBody performs a GET and returns the body of a 2xx response
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d from %s", ErrStatus, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// GetJSON performs a GET and decodes a 2xx JSON response into out
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	body, err := c.GetBody(ctx, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode JSON from %s: %w", url, err)
	}
	return nil
}

// do executes the request with throttling, retry logic and logging
func (c *Client) do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	startTime := time.Now()
	url := req.URL.String()
	method := req.Method

	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limit wait failed: %w", err)
		}
	}

	if c.rateLimiter != nil && c.rateLimitCfg != nil {
		if err := c.rateLimiter.Wait(req.Context(), *c.rateLimitCfg); err != nil {
			return nil, fmt.Errorf("rate limit wait failed: %w", err)
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"method": method,
		"url":    url,
	}).Debug("HTTP request started")

	if c.retryConfig.Enabled {
		resp, err = c.doWithRetry(req)
	} else {
		resp, err = c.httpClient.Do(req)
	}

	duration := time.Since(startTime)

	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"method":   method,
			"url":      url,
			"duration": duration,
			"error":    err.Error(),
		}).Warn("HTTP request failed")
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"method":      method,
		"url":         url,
		"status_code": resp.StatusCode,
		"duration":    duration,
	}).Debug("HTTP request completed")

	return resp, nil
}

// doWithRetry executes the request with exponential backoff retry.
// Only bodiless requests are retried. When retries run out on a
// retryable status the last response is returned as-is.
func (c *Client) doWithRetry(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	attempt := 0

	maxRetries := c.retryConfig.MaxRetries
	if req.Body != nil {
		maxRetries = 0
	}

	operation := func() error {
		if resp != nil {
			resp.Body.Close()
			resp = nil
		}
		attempt++

		var err error
		resp, err = c.httpClient.Do(req)
		if err != nil {
			if req.Context().Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		if IsRetryableError(resp.StatusCode) {
			return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
		}
		return nil
	}

	notify := func(err error, delay time.Duration) {
		c.logger.WithFields(map[string]interface{}{
			"attempt": attempt,
			"delay":   delay,
			"url":     req.URL.String(),
			"error":   err.Error(),
		}).Warn("Retrying HTTP request")
	}

	err := backoff.RetryNotify(operation, c.retryPolicy(req.Context(), maxRetries), notify)
	switch {
	case err == nil:
		return resp, nil
	case req.Context().Err() != nil:
		if resp != nil {
			resp.Body.Close()
		}
		return nil, req.Context().Err()
	case resp != nil:
		return resp, nil
	default:
		return nil, err
	}
}

// retryPolicy doubles the delay from InitialDelay up to MaxDelay, without jitter
func (c *Client) retryPolicy(ctx context.Context, maxRetries int) backoff.BackOffContext {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.retryConfig.InitialDelay
	exp.MaxInterval = c.retryConfig.MaxDelay
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(max(maxRetries, 0))), ctx)
}

// IsRetryableError checks if a status code should be retried
func IsRetryableError(statusCode int) bool {
	// Retry on 5xx server errors and 429 Too Many Requests
	return statusCode >= 500 || statusCode == 429
}
