package vowelize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// Breaker stops calling a failing vowelizer for a cooldown period. It
// never retries; a rejected call fails immediately with
// gobreaker.ErrOpenState.
type Breaker struct {
	next Vowelizer
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next in a circuit breaker that opens after maxFailures
// consecutive failures
func NewBreaker(next Vowelizer, maxFailures uint32, cooldown time.Duration) *Breaker {
	if maxFailures == 0 {
		maxFailures = 1
	}

	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A cancelled request says nothing about the service
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &Breaker{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped provider name
func (b *Breaker) Name() string {
	return b.next.Name()
}

// State returns the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Vowelize calls the wrapped vowelizer unless the circuit is open
func (b *Breaker) Vowelize(ctx context.Context, text string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Vowelize(ctx, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%s vowelizer unavailable: %w", b.next.Name(), err)
		}
		return "", err
	}
	return out.(string), nil
}
