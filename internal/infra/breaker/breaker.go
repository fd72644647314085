// Package infra_breaker builds the circuit breakers around external APIs.
package infra_breaker

import (
	"log/slog"
	"time"

	"github.com/humanbelnik/moviematch/internal/metrics"
	gobreaker "github.com/sony/gobreaker/v2"
)

type Settings struct {
	// Requests allowed through while half-open.
	MaxRequests uint32
	// Window after which closed-state counts reset.
	Interval time.Duration
	// Time spent open before probing again.
	Timeout time.Duration
	// Consecutive failures that open the breaker.
	Failures uint32
	// IsSuccessful marks errors that say nothing about the remote health.
	IsSuccessful func(err error) bool
}

func DefaultSettings() Settings {
	return Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		Failures:    5,
	}
}

func New[T any](name string, s Settings, logger *slog.Logger) *gobreaker.CircuitBreaker[T] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.Failures
		},
		IsSuccessful: s.IsSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
