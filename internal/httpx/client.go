// Package httpx is the outbound HTTP client shared by external
// collaborators. It paces requests, retries transient failures with
// exponential backoff, and respects context deadlines throughout.
package httpx

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cropyield/advisor-service/internal/httpx/ratelimit"
)

const userAgent = "CropYield-Advisor/1.0"

// Client is an HTTP client with rate limiting and retry logic.
type Client struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	config     ratelimit.Config
}

// NewClient creates a client with the given rate limit config and a
// per-request timeout.
func NewClient(config ratelimit.Config, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    ratelimit.NewLimiter(config),
		config:     config,
	}
}

// NewClientDefault creates a client with default rate limiting.
func NewClientDefault() *Client {
	return NewClient(ratelimit.DefaultConfig(), 30*time.Second)
}

// Do performs a request with rate limiting and retries. The body is buffered
// so it can be replayed on retry. Headers are applied to every attempt.
func (c *Client) Do(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	var lastStatus int
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "*/*")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if attempt < c.config.MaxRetries {
				if !sleepCtx(ctx, ratelimit.Backoff(attempt, c.config)) {
					return nil, ctx.Err()
				}
				continue
			}
			break
		}

		lastStatus = resp.StatusCode

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		if !ratelimit.IsRetryableStatus(resp.StatusCode) || attempt == c.config.MaxRetries {
			resp.Body.Close()
			break
		}

		var backoff time.Duration
		if resp.StatusCode == http.StatusTooManyRequests {
			backoff = ratelimit.RateLimitBackoff(attempt, c.config, resp.Header.Get("Retry-After"))
		} else {
			backoff = ratelimit.Backoff(attempt, c.config)
		}
		resp.Body.Close()

		if !sleepCtx(ctx, backoff) {
			return nil, ctx.Err()
		}
	}

	return nil, &ratelimit.RetryError{
		URL:        url,
		Attempts:   c.config.MaxRetries + 1,
		LastStatus: lastStatus,
		LastError:  lastErr,
	}
}

// PostJSON performs a POST with a JSON body and returns the response body.
func (c *Client) PostJSON(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	if headers == nil {
		headers = make(map[string]string, 1)
	}
	headers["Content-Type"] = "application/json"

	resp, err := c.Do(ctx, http.MethodPost, url, body, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// Config returns the client's rate limit config.
func (c *Client) Config() ratelimit.Config {
	return c.config
}

// sleepCtx sleeps for d unless the context ends first; returns false when
// the context ended.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
