package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	WorkerCount       int    `mapstructure:"WORKER_COUNT"`
	MaxRetries        int    `mapstructure:"MAX_RETRIES"`
	Headless          bool   `mapstructure:"HEADLESS"`
	RequestDelayMS    int    `mapstructure:"REQUEST_DELAY_MS"`
	RetryDelayMS      int    `mapstructure:"RETRY_DELAY_MS"`
	NavTimeoutSeconds int    `mapstructure:"NAV_TIMEOUT_SECONDS"`
	SampleVideoLimit  int    `mapstructure:"SAMPLE_VIDEO_LIMIT"`
	ResolveCacheDays  int    `mapstructure:"RESOLVE_CACHE_DAYS"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	PostgresURL       string `mapstructure:"POSTGRES_URL"`
	ServerPort        string `mapstructure:"SERVER_PORT"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present.
	// This allows configuration purely through environment variables.
	_ = viper.ReadInConfig()

	viper.SetDefault("WORKER_COUNT", 6)
	viper.SetDefault("MAX_RETRIES", 3)
	viper.SetDefault("HEADLESS", true)
	viper.SetDefault("REQUEST_DELAY_MS", 1000)
	viper.SetDefault("RETRY_DELAY_MS", 2000)
	viper.SetDefault("NAV_TIMEOUT_SECONDS", 10)
	viper.SetDefault("SAMPLE_VIDEO_LIMIT", 10)
	viper.SetDefault("RESOLVE_CACHE_DAYS", 2)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RequestDelay is the pause a worker takes between consecutive tasks.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}

// RetryDelay is the constant wait between retry attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

// NavTimeout is the hard per-navigation timeout.
func (c *Config) NavTimeout() time.Duration {
	return time.Duration(c.NavTimeoutSeconds) * time.Second
}

// ResolveCacheTTL is how long a resolved alias stays cached in Redis.
func (c *Config) ResolveCacheTTL() time.Duration {
	return time.Duration(c.ResolveCacheDays) * 24 * time.Hour
}
