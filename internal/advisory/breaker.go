package advisory

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// BreakerState represents the state of the circuit breaker guarding the
// narrative service.
type BreakerState int

const (
	// BreakerClosed allows requests to pass through.
	BreakerClosed BreakerState = iota

	// BreakerOpen rejects requests immediately.
	BreakerOpen

	// BreakerHalfOpen allows probe requests to check for recovery.
	BreakerHalfOpen
)

// String returns the string representation of the breaker state.
func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig holds configuration for the circuit breaker.
type BreakerConfig struct {
	MaxFailures      int           // Consecutive failures before opening
	ResetTimeout     time.Duration // Wait before probing in half-open
	HalfOpenMaxCalls int           // Probes required to close again
}

// DefaultBreakerConfig returns the default breaker configuration.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures:      5,
		ResetTimeout:     30 * time.Second,
		HalfOpenMaxCalls: 2,
	}
}

// Breaker implements the circuit breaker pattern for the narrative service.
// A run of failed generations opens the circuit so a dead upstream does not
// add its full timeout to every advisory request.
type Breaker struct {
	mu              sync.Mutex
	state           BreakerState
	failureCount    int
	successCount    int
	lastFailureTime time.Time
	config          BreakerConfig
	logger          zerolog.Logger
}

// NewBreaker creates a circuit breaker.
func NewBreaker(config BreakerConfig, logger zerolog.Logger) *Breaker {
	return &Breaker{
		state:  BreakerClosed,
		config: config,
		logger: logger,
	}
}

// Allow reports whether a request should proceed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		return true
	case BreakerOpen:
		if time.Since(b.lastFailureTime) >= b.config.ResetTimeout {
			b.state = BreakerHalfOpen
			b.successCount = 0
			b.logger.Info().Msg("Narrative breaker half-open, probing upstream")
			return true
		}
		return false
	case BreakerHalfOpen:
		return b.successCount < b.config.HalfOpenMaxCalls
	default:
		return false
	}
}

// RecordSuccess records a successful generation.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failureCount = 0
	case BreakerHalfOpen:
		b.successCount++
		if b.successCount >= b.config.HalfOpenMaxCalls {
			b.state = BreakerClosed
			b.failureCount = 0
			b.successCount = 0
			b.logger.Info().Msg("Narrative breaker closed after recovery")
		}
	}
}

// RecordFailure records a failed generation.
func (b *Breaker) RecordFailure(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++
	b.lastFailureTime = time.Now()

	switch b.state {
	case BreakerClosed:
		if b.failureCount >= b.config.MaxFailures {
			b.state = BreakerOpen
			b.logger.Warn().Err(err).
				Int("failures", b.failureCount).
				Dur("reset_timeout", b.config.ResetTimeout).
				Msg("Narrative breaker opened")
		}
	case BreakerHalfOpen:
		b.state = BreakerOpen
		b.successCount = 0
		b.logger.Warn().Err(err).Msg("Narrative breaker re-opened after failed probe")
	}
}

// State returns the current breaker state.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
