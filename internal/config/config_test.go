package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/channel-scraper/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.WorkerCount)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.True(t, cfg.Headless)
	assert.Equal(t, time.Second, cfg.RequestDelay())
	assert.Equal(t, 2*time.Second, cfg.RetryDelay())
	assert.Equal(t, 10*time.Second, cfg.NavTimeout())
	assert.Equal(t, 10, cfg.SampleVideoLimit)
	assert.Equal(t, 48*time.Hour, cfg.ResolveCacheTTL())
	assert.Equal(t, "8080", cfg.ServerPort)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("WORKER_COUNT", "12")
	t.Setenv("MAX_RETRIES", "0")
	t.Setenv("HEADLESS", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.WorkerCount)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.False(t, cfg.Headless)
}
