package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds breaker thresholds
type Config struct {
	// MaxRequests allowed through while half-open
	MaxRequests uint32
	// Interval after which closed-state counts are reset
	Interval time.Duration
	// Timeout before an open breaker moves to half-open
	Timeout time.Duration
	// ConsecutiveFailures that trip the breaker
	ConsecutiveFailures uint32
}

// DefaultConfig returns the thresholds used for the summary cache
func DefaultConfig() Config {
	return Config{
		MaxRequests:         1,
		Interval:            30 * time.Second,
		Timeout:             10 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// Breaker provides fast-fail behavior when a dependency fails repeatedly
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New creates a breaker that logs every state transition
func New(name string, cfg Config, logger *slog.Logger) *Breaker {
	if logger == nil {
		logger = slog.Default()
	}
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}

	return &Breaker{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})}
}

// Execute runs fn unless the breaker is open
func Execute[T any](b *Breaker, fn func() (T, error)) (T, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}

// State returns the current state name: closed, half-open or open
func (b *Breaker) State() string {
	return b.cb.State().String()
}

// IsOpen reports whether err was returned because the breaker rejected the call
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
