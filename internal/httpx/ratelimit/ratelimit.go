// Package ratelimit provides request pacing, retry classification, and
// backoff calculation for outbound HTTP calls.
package ratelimit

import (
	"context"
	"math"
	"math/rand"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Config holds rate limiting and retry configuration.
type Config struct {
	RequestsPerSecond float64 `json:"requestsPerSecond"`
	Burst             int     `json:"burst"`
	MaxRetries        int     `json:"maxRetries"`
	InitialBackoffMs  int     `json:"initialBackoffMs"`
	MaxBackoffMs      int     `json:"maxBackoffMs"`
}

// DefaultConfig returns the default rate limit configuration.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 2,
		Burst:             2,
		MaxRetries:        3,
		InitialBackoffMs:  100,
		MaxBackoffMs:      30000,
	}
}

// Limiter paces outbound requests with a token bucket.
type Limiter struct {
	limiter *rate.Limiter
	config  Config
}

// NewLimiter creates a limiter with the given config.
func NewLimiter(config Config) *Limiter {
	burst := config.Burst
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst),
		config:  config,
	}
}

// Wait blocks until a request may proceed or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Config returns the limiter's configuration.
func (l *Limiter) Config() Config {
	return l.config
}

// RetryError is returned when all retry attempts are exhausted.
type RetryError struct {
	URL        string
	Attempts   int
	LastStatus int
	LastError  error
}

func (e *RetryError) Error() string {
	msg := "failed to fetch " + e.URL + " after " + strconv.Itoa(e.Attempts) + " attempts"
	if e.LastStatus != 0 {
		msg += " (HTTP " + strconv.Itoa(e.LastStatus) + ")"
	}
	if e.LastError != nil {
		msg += ": " + e.LastError.Error()
	}
	return msg
}

func (e *RetryError) Unwrap() error {
	return e.LastError
}

// IsRetryableStatus checks if an HTTP status code is retryable.
// Retryable: 429 and 5xx.
func IsRetryableStatus(status int) bool {
	return status == 429 || (status >= 500 && status < 600)
}

// Backoff calculates exponential backoff with 0-25% jitter for an attempt.
func Backoff(attempt int, config Config) time.Duration {
	delay := float64(config.InitialBackoffMs) * math.Pow(2, float64(attempt))
	delay = math.Min(delay, float64(config.MaxBackoffMs))
	delay += rand.Float64() * 0.25 * delay
	return time.Duration(delay) * time.Millisecond
}

// RateLimitBackoff calculates backoff for HTTP 429 responses, respecting a
// Retry-After header when the server provides one.
func RateLimitBackoff(attempt int, config Config, retryAfter string) time.Duration {
	if retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
			return time.Duration(seconds)*time.Second + time.Duration(rand.Intn(1000))*time.Millisecond
		}
	}
	// More aggressive growth than server errors.
	delay := float64(config.InitialBackoffMs) * math.Pow(3, float64(attempt))
	delay = math.Min(delay, float64(config.MaxBackoffMs))
	delay += rand.Float64() * 0.25 * delay
	return time.Duration(delay) * time.Millisecond
}
