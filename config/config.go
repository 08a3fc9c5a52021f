package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the application's configuration
type Config struct {
	LogLevel                string `mapstructure:"LOG_LEVEL"`
	WebPort                 int    `mapstructure:"WEB_PORT"`
	MaxRequestBytes         int64  `mapstructure:"MAX_REQUEST_BYTES"`
	CacheSize               int    `mapstructure:"CACHE_SIZE"`
	RateLimitRequestsPerMin int    `mapstructure:"RATE_LIMIT_REQUESTS_PER_MIN"`
	RateLimitBurstSize      int    `mapstructure:"RATE_LIMIT_BURST_SIZE"`
	RateLimitCleanupMinutes int    `mapstructure:"RATE_LIMIT_CLEANUP_INTERVAL"`
	ShutdownTimeoutSeconds  int    `mapstructure:"SHUTDOWN_TIMEOUT"`

	// Derived from the minute/second settings above.
	RateLimitCleanupInterval time.Duration `mapstructure:"-"`
	ShutdownTimeout          time.Duration `mapstructure:"-"`
}

func Load(logger *zap.Logger) *Config {
	var config Config
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")        // For running locally
	v.AddConfigPath("../")      // For running from docker subdir
	v.AddConfigPath("./config") // Common config folder
	v.AutomaticEnv()

	// Set default values
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("WEB_PORT", 8090)
	v.SetDefault("MAX_REQUEST_BYTES", 1<<20)
	v.SetDefault("CACHE_SIZE", 1024)
	v.SetDefault("RATE_LIMIT_REQUESTS_PER_MIN", 600)
	v.SetDefault("RATE_LIMIT_BURST_SIZE", 60)
	v.SetDefault("RATE_LIMIT_CLEANUP_INTERVAL", 10)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10)

	if err := v.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Warn("Could not read config file, using defaults/env vars", zap.Error(err))
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		// Config unmarshaling is critical - fail fast during bootstrap
		if logger != nil {
			logger.Fatal("Unable to decode config into struct", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	config.normalize(logger)
	return &config
}

// normalize clamps out-of-range values and derives the duration fields.
func (c *Config) normalize(logger *zap.Logger) {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.MaxRequestBytes <= 0 {
		c.MaxRequestBytes = 1 << 20
	}
	if c.CacheSize < 0 {
		if logger != nil {
			logger.Warn("Negative CACHE_SIZE, disabling result cache", zap.Int("cache_size", c.CacheSize))
		}
		c.CacheSize = 0
	}
	if c.RateLimitBurstSize <= 0 {
		c.RateLimitBurstSize = 1
	}

	if c.RateLimitCleanupMinutes <= 0 {
		c.RateLimitCleanupMinutes = 10
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		c.ShutdownTimeoutSeconds = 10
	}
	c.RateLimitCleanupInterval = time.Duration(c.RateLimitCleanupMinutes) * time.Minute
	c.ShutdownTimeout = time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
