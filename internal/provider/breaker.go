package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// BreakerSettings controls when the circuit opens and how long it stays open
type BreakerSettings struct {
	MaxFailures uint32
	Timeout     time.Duration
}

// Breaker rejects calls to a provider after too many consecutive failures
type Breaker struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker wraps p in a circuit breaker. Missing credentials and
// cancelled contexts do not count as provider failures.
func WithBreaker(p Provider, s BreakerSettings, log *logrus.Logger) *Breaker {
	settings := gobreaker.Settings{
		Name:        p.Name(),
		MaxRequests: 1,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrMissingCredentials) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log == nil {
				return
			}
			log.WithFields(logrus.Fields{
				"provider": name,
				"from":     from.String(),
				"to":       to.String(),
			}).Warn("translation provider circuit breaker changed state")
		},
	}

	return &Breaker{
		next: p,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped provider's name
func (b *Breaker) Name() string {
	return b.next.Name()
}

// State returns the current circuit state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Translate calls the wrapped provider unless the circuit is open
func (b *Breaker) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text, fromLang, toLang)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%s: %w", b.Name(), err)
		}
		return "", err
	}
	return result.(string), nil
}
