package enrichment

import (
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// breakerState is the tagged state of the quota circuit breaker.
type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
)

// Breaker guards the text-generation collaborator against hammering a
// rate-limited API. It is either Closed or Open since a given instant; there
// is no separate half-open bookkeeping — once the backoff window elapses the
// next call simply proceeds as if the breaker were closed.
//
// State is only touched from within the single active service cycle, so the
// breaker itself carries no lock.
type Breaker struct {
	state    breakerState
	openedAt time.Time
}

// Trip opens the breaker at the given instant. Re-tripping an open breaker
// keeps the original open time.
func (b *Breaker) Trip(now time.Time) {
	if b.state == breakerClosed {
		b.state = breakerOpen
		b.openedAt = now
	}
}

// ShouldAttempt reports whether a call may go out at the given instant.
func (b *Breaker) ShouldAttempt(now time.Time, backoff time.Duration) bool {
	if b.state == breakerClosed {
		return true
	}
	return now.Sub(b.openedAt) >= backoff
}

// IsOpen reports whether the breaker is currently suppressing calls.
func (b *Breaker) IsOpen(now time.Time, backoff time.Duration) bool {
	return !b.ShouldAttempt(now, backoff)
}

// IsThrottled classifies an error from the text-generation boundary as a
// rate-limit/quota signal. A structured 429 from the API is preferred; the
// textual signatures cover providers that only surface a message.
func IsThrottled(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate")
}
