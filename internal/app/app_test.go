package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/humanbelnik/moviematch/internal/config"
	"github.com/humanbelnik/moviematch/internal/metrics"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type AppUnitSuite struct {
	suite.Suite
}

type fakeRooms struct {
	codes []string
	err   error
}

func (f fakeRooms) Codes(context.Context) ([]string, error) {
	return f.codes, f.err
}

type fakeCodeSet struct {
	reset []string
	err   error
}

func (f *fakeCodeSet) Reset(_ context.Context, codes []string) error {
	f.reset = codes
	return f.err
}

func (s *AppUnitSuite) TestResyncCodes(t provider.T) {
	t.Run("Should mirror open rooms", func(t provider.T) {
		set := &fakeCodeSet{}

		err := resyncCodes(context.Background(), fakeRooms{codes: []string{"AB12CD", "ZX98YW"}}, set)

		require.NoError(t, err)
		assert.Equal(t, []string{"AB12CD", "ZX98YW"}, set.reset)
		assert.Equal(t, float64(2), testutil.ToFloat64(metrics.RoomsActive))
	})

	t.Run("Should stop on listing failure", func(t provider.T) {
		set := &fakeCodeSet{}
		failure := errors.New("pq: connection refused")

		err := resyncCodes(context.Background(), fakeRooms{err: failure}, set)

		assert.ErrorIs(t, err, failure)
		assert.Nil(t, set.reset)
	})

	t.Run("Should report redis failure", func(t provider.T) {
		failure := errors.New("redis: connection refused")

		err := resyncCodes(context.Background(), fakeRooms{}, &fakeCodeSet{err: failure})

		assert.ErrorIs(t, err, failure)
	})
}

func (s *AppUnitSuite) TestNewLogger(t provider.T) {
	t.Parallel()

	t.Run("Should write json at configured level", func(t provider.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(config.Log{Level: "warn", Format: "json"}, &buf)

		logger.Info("hidden")
		logger.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"msg":"shown"`)
	})

	t.Run("Should write text format", func(t provider.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(config.Log{Level: "debug", Format: "text"}, &buf)

		logger.Debug("details")

		assert.Contains(t, buf.String(), "msg=details")
	})

	t.Run("Should fall back to info", func(t provider.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(config.Log{Level: "verbose", Format: "json"}, &buf)

		logger.Debug("hidden")
		logger.Info("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}

func TestAppUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(AppUnitSuite))
}
