package advisory

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func testBreaker(maxFailures int, resetTimeout time.Duration) *Breaker {
	return NewBreaker(BreakerConfig{
		MaxFailures:      maxFailures,
		ResetTimeout:     resetTimeout,
		HalfOpenMaxCalls: 2,
	}, zerolog.Nop())
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	b := testBreaker(3, time.Minute)
	errUpstream := errors.New("upstream down")

	assert.Equal(t, BreakerClosed, b.State())
	b.RecordFailure(errUpstream)
	b.RecordFailure(errUpstream)
	assert.Equal(t, BreakerClosed, b.State())
	assert.True(t, b.Allow())

	b.RecordFailure(errUpstream)
	assert.Equal(t, BreakerOpen, b.State())
	assert.False(t, b.Allow())
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b := testBreaker(3, time.Minute)
	errUpstream := errors.New("upstream down")

	b.RecordFailure(errUpstream)
	b.RecordFailure(errUpstream)
	b.RecordSuccess()
	b.RecordFailure(errUpstream)
	b.RecordFailure(errUpstream)

	assert.Equal(t, BreakerClosed, b.State())
}

func TestBreakerHalfOpensAfterResetTimeout(t *testing.T) {
	b := testBreaker(1, 10*time.Millisecond)

	b.RecordFailure(errors.New("upstream down"))
	assert.Equal(t, BreakerOpen, b.State())
	assert.False(t, b.Allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, b.Allow())
	assert.Equal(t, BreakerHalfOpen, b.State())
}

func TestBreakerClosesAfterSuccessfulProbes(t *testing.T) {
	b := testBreaker(1, 10*time.Millisecond)

	b.RecordFailure(errors.New("upstream down"))
	time.Sleep(20 * time.Millisecond)
	assert.True(t, b.Allow())

	b.RecordSuccess()
	assert.Equal(t, BreakerHalfOpen, b.State())
	b.RecordSuccess()
	assert.Equal(t, BreakerClosed, b.State())
	assert.True(t, b.Allow())
}

func TestBreakerReopensOnFailedProbe(t *testing.T) {
	b := testBreaker(1, 10*time.Millisecond)

	b.RecordFailure(errors.New("upstream down"))
	time.Sleep(20 * time.Millisecond)
	assert.True(t, b.Allow())

	b.RecordFailure(errors.New("still down"))
	assert.Equal(t, BreakerOpen, b.State())
	assert.False(t, b.Allow())
}

func TestBreakerStateString(t *testing.T) {
	assert.Equal(t, "closed", BreakerClosed.String())
	assert.Equal(t, "open", BreakerOpen.String())
	assert.Equal(t, "half-open", BreakerHalfOpen.String())
	assert.Equal(t, "unknown", BreakerState(42).String())
}
