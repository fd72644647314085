package config

import (
	"os"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ConfigUnitSuite struct {
	suite.Suite
}

func setenv(t provider.T, vars map[string]string) {
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
	}
	t.Cleanup(func() {
		for k := range vars {
			_ = os.Unsetenv(k)
		}
	})
}

// Not parallel: the cases mutate process environment.
func (s *ConfigUnitSuite) TestDefaults(t provider.T) {
	cfg := FromEnv()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Rooms.MaxSize)
	assert.Equal(t, 6, cfg.Rooms.CodeLength)
	assert.Equal(t, 5, cfg.Matching.MaxGroupSize)
	assert.Equal(t, 3*time.Second, cfg.Matching.DispatchTimeout)
	assert.Equal(t, time.Hour, cfg.Catalog.CacheTTL)
	assert.False(t, cfg.S3.Enabled())
}

func (s *ConfigUnitSuite) TestOverrides(t provider.T) {
	setenv(t, map[string]string{
		"ROOM_MAX_SIZE":            "8",
		"MOVIE_CACHE_TTL":          "3600",
		"CATALOG_REFRESH_INTERVAL": "15m",
		"QUEUE_BACKEND":            "memory",
		"S3_BUCKET":                "posters-bucket",
	})

	cfg := FromEnv()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8, cfg.Rooms.MaxSize)
	assert.Equal(t, time.Hour, cfg.Catalog.CacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.Catalog.RefreshInterval)
	assert.Equal(t, "memory", cfg.Queue.Backend)
	assert.True(t, cfg.S3.Enabled())
}

func (s *ConfigUnitSuite) TestValidate(t provider.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "Should reject room size below two", mutate: func(c *Config) { c.Rooms.MaxSize = 1 }},
		{name: "Should reject unknown queue backend", mutate: func(c *Config) { c.Queue.Backend = "kafka" }},
		{name: "Should reject catalog ceiling below floor", mutate: func(c *Config) { c.Catalog.MaxSize = c.Catalog.MinActive - 1 }},
		{name: "Should reject unknown log level", mutate: func(c *Config) { c.Log.Level = "trace" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			cfg := FromEnv()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ConfigUnitSuite))
}
