package infra_breaker

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/humanbelnik/moviematch/internal/metrics"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
)

type BreakerUnitSuite struct {
	suite.Suite
}

func (s *BreakerUnitSuite) TestOpensAfterConsecutiveFailures(t provider.T) {
	cb := New[int]("breaker-test-open", Settings{MaxRequests: 1, Interval: time.Minute, Timeout: time.Hour, Failures: 2}, slog.Default())
	failure := errors.New("boom")

	for range 2 {
		_, err := cb.Execute(func() (int, error) { return 0, failure })
		assert.ErrorIs(t, err, failure)
	}

	_, err := cb.Execute(func() (int, error) { return 1, nil })

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, gobreaker.StateOpen, cb.State())
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("breaker-test-open")))
}

func (s *BreakerUnitSuite) TestSuccessResetsFailureRun(t provider.T) {
	cb := New[int]("breaker-test-reset", Settings{MaxRequests: 1, Interval: time.Minute, Timeout: time.Hour, Failures: 2}, slog.Default())
	failure := errors.New("boom")

	_, _ = cb.Execute(func() (int, error) { return 0, failure })
	_, _ = cb.Execute(func() (int, error) { return 1, nil })
	_, _ = cb.Execute(func() (int, error) { return 0, failure })

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestBreakerUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(BreakerUnitSuite))
}
