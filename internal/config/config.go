package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	// Config holds configuration settings for the flow service
	Config struct {
		// API Server
		APIHost     string
		APIPort     int
		Environment string
		LogLevel    string

		// Authentication
		AuthSecret         string
		TokenExpiryMinutes int

		// Rate Limiting
		RateLimitEnabled   bool
		RateLimitPerMinute int

		// Engine
		TaskTimeout     int64 // seconds
		SecurityHeaders bool
		ShutdownTimeout time.Duration
	}
)

const (
	DefaultTaskTimeout     = 300 // seconds
	DefaultShutdownTimeout = 10 * time.Second

	DefaultAPIPort = 8000
	DefaultAPIHost = "0.0.0.0"
	MaxTCPPort     = 65535

	DefaultTokenExpiryMinutes = 60
	DefaultRateLimitPerMinute = 60
	MinAuthSecretLength       = 32

	DefaultAuthSecret = "insecure-development-secret-change-me"

	MaxTaskTimeout  = 24 * 60 * 60 // 1 day in seconds
	MaxTokenExpiry  = 30 * 24 * 60 // 30 days in minutes
	MaxRateLimit    = 100_000
	MaxShutdownWait = 5 * time.Minute
)

var (
	ErrInvalidAPIPort     = errors.New("invalid API port")
	ErrInvalidTaskTimeout = errors.New("task timeout must be positive")
	ErrInvalidTokenExpiry = errors.New("token expiry must be positive")
	ErrAuthSecretTooShort = errors.New(
		"auth secret must be at least 32 characters",
	)
	ErrInvalidRateLimit = errors.New("rate limit must be positive")
)

// NewDefaultConfig creates a configuration with sensible defaults for the
// API server, authentication, and engine settings
func NewDefaultConfig() *Config {
	return &Config{
		APIHost:            DefaultAPIHost,
		APIPort:            DefaultAPIPort,
		Environment:        "development",
		LogLevel:           "info",
		AuthSecret:         DefaultAuthSecret,
		TokenExpiryMinutes: DefaultTokenExpiryMinutes,
		RateLimitEnabled:   true,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		TaskTimeout:        DefaultTaskTimeout,
		SecurityHeaders:    true,
		ShutdownTimeout:    DefaultShutdownTimeout,
	}
}

// LoadFromEnv populates configuration values from environment variables.
// Returns an error if any env var cannot be parsed.
func (c *Config) LoadFromEnv() error {
	if apiHost := os.Getenv("API_HOST"); apiHost != "" {
		c.APIHost = apiHost
	}
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		c.Environment = env
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.LogLevel = logLevel
	}
	if secret := os.Getenv("AUTH_SECRET"); secret != "" {
		c.AuthSecret = secret
	}

	if err := loadEnvInt("API_PORT", &c.APIPort, 0, MaxTCPPort); err != nil {
		return err
	}
	if err := loadEnvInt(
		"TASK_TIMEOUT", &c.TaskTimeout, 0, MaxTaskTimeout,
	); err != nil {
		return err
	}
	if err := loadEnvInt(
		"TOKEN_EXPIRY_MINUTES", &c.TokenExpiryMinutes, 0, MaxTokenExpiry,
	); err != nil {
		return err
	}
	if err := loadEnvInt(
		"RATE_LIMIT_PER_MINUTE", &c.RateLimitPerMinute, 0, MaxRateLimit,
	); err != nil {
		return err
	}

	if err := loadEnvBool(
		"RATE_LIMIT_ENABLED", &c.RateLimitEnabled,
	); err != nil {
		return err
	}
	return loadEnvBool("SECURITY_HEADERS_ENABLED", &c.SecurityHeaders)
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > MaxTCPPort {
		return fmt.Errorf("%w: %d", ErrInvalidAPIPort, c.APIPort)
	}

	if c.TaskTimeout <= 0 {
		return ErrInvalidTaskTimeout
	}

	if c.TokenExpiryMinutes <= 0 {
		return ErrInvalidTokenExpiry
	}

	if len(c.AuthSecret) < MinAuthSecretLength {
		return fmt.Errorf("%w: %d", ErrAuthSecretTooShort, len(c.AuthSecret))
	}

	if c.RateLimitEnabled && c.RateLimitPerMinute <= 0 {
		return ErrInvalidRateLimit
	}

	return nil
}

// TokenExpiry returns the configured token lifetime as a duration
func (c *Config) TokenExpiry() time.Duration {
	return time.Duration(c.TokenExpiryMinutes) * time.Minute
}

// TaskTimeoutDuration returns the per-task execution deadline
func (c *Config) TaskTimeoutDuration() time.Duration {
	return time.Duration(c.TaskTimeout) * time.Second
}

// loadEnvInt reads key from the environment, parses it as an integer, and
// sets *dst if the value is in the range (min, max). Returns an error if
// the value cannot be parsed or falls outside the valid range.
func loadEnvInt[T ~int | ~int64](key string, dst *T, min, max T) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	tv := T(v)
	if tv <= min || tv > max {
		return fmt.Errorf("invalid %s: %d out of range [%d, %d]",
			key, tv, min+1, max)
	}
	*dst = tv
	return nil
}

// loadEnvBool reads key from the environment, parses it as a boolean, and
// sets *dst when the variable is present. Returns an error if the value
// cannot be parsed.
func loadEnvBool(key string, dst *bool) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	*dst = v
	return nil
}
