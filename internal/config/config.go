// Package config loads gateway configuration from environment variables and
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ericfisherdev/tprmkit/internal/domain/model"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultRateLimit     = 20.0
	DefaultExportTimeout = 60 * time.Second
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultEnvFile       = ".env"
)

// UnboundedRetries marks MaxRateLimitRetries as having no upper bound.
const UnboundedRetries = -1

// Config holds the gateway configuration.
type Config struct {
	Tenant   string
	APIKey   string
	Email    string
	Password string

	// BaseURL replaces the tenant-derived origin when set.
	BaseURL string

	RateLimit     float64
	ExportTimeout time.Duration
	// MaxRateLimitRetries bounds 429 retries per call. UnboundedRetries never
	// gives up; 0 surfaces the first 429 as an error.
	MaxRateLimitRetries int
	HTTPTimeout         time.Duration
}

// Credentials returns the credential set carried by the config.
func (c *Config) Credentials() model.Credentials {
	return model.Credentials{
		Tenant:   c.Tenant,
		APIKey:   c.APIKey,
		Email:    c.Email,
		Password: c.Password,
	}
}

// Overrides holds explicitly supplied values (typically CLI flags). Zero
// values leave the loaded configuration untouched.
type Overrides struct {
	Tenant    string
	APIKey    string
	Email     string
	Password  string
	BaseURL   string
	RateLimit float64
}

// Apply overwrites every field for which o carries a non-zero value.
func (c *Config) Apply(o Overrides) {
	if o.Tenant != "" {
		c.Tenant = o.Tenant
	}
	if o.APIKey != "" {
		c.APIKey = o.APIKey
	}
	if o.Email != "" {
		c.Email = o.Email
	}
	if o.Password != "" {
		c.Password = o.Password
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.RateLimit != 0 {
		c.RateLimit = o.RateLimit
	}
}

// Load reads configuration from environment variables. Before reading, it
// loads AUDITBOARD_ENV_FILE (default .env) when that file exists; variables
// already present in the environment take precedence over the file.
// Credential variables (AUDITBOARD_TENANT, AUDITBOARD_API_KEY,
// AUDITBOARD_EMAIL, AUDITBOARD_PASSWORD) are not validated here; the gateway
// reports any that are missing.
// Optional variables with defaults: AUDITBOARD_RATE_LIMIT (20),
// AUDITBOARD_EXPORT_TIMEOUT (60s), AUDITBOARD_HTTP_TIMEOUT (30s),
// AUDITBOARD_MAX_RATE_LIMIT_RETRIES (unset or negative: unbounded; 0: a 429
// is never retried; N: at most N retries), AUDITBOARD_BASE_URL (none).
func Load() (*Config, error) {
	envFile := DefaultEnvFile
	if v, ok := os.LookupEnv("AUDITBOARD_ENV_FILE"); ok && v != "" {
		envFile = v
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	rateLimit := DefaultRateLimit
	if v, ok := os.LookupEnv("AUDITBOARD_RATE_LIMIT"); ok {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("AUDITBOARD_RATE_LIMIT has invalid number %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("AUDITBOARD_RATE_LIMIT must be positive, got %q", v)
		}
		rateLimit = parsed
	}

	exportTimeout, err := durationEnv("AUDITBOARD_EXPORT_TIMEOUT", DefaultExportTimeout)
	if err != nil {
		return nil, err
	}

	httpTimeout, err := durationEnv("AUDITBOARD_HTTP_TIMEOUT", DefaultHTTPTimeout)
	if err != nil {
		return nil, err
	}

	maxRetries := UnboundedRetries
	if v, ok := os.LookupEnv("AUDITBOARD_MAX_RATE_LIMIT_RETRIES"); ok && v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("AUDITBOARD_MAX_RATE_LIMIT_RETRIES has invalid integer %q: %w", v, err)
		}
		if parsed < 0 {
			parsed = UnboundedRetries
		}
		maxRetries = parsed
	}

	return &Config{
		Tenant:              os.Getenv("AUDITBOARD_TENANT"),
		APIKey:              os.Getenv("AUDITBOARD_API_KEY"),
		Email:               os.Getenv("AUDITBOARD_EMAIL"),
		Password:            os.Getenv("AUDITBOARD_PASSWORD"),
		BaseURL:             os.Getenv("AUDITBOARD_BASE_URL"),
		RateLimit:           rateLimit,
		ExportTimeout:       exportTimeout,
		MaxRateLimitRetries: maxRetries,
		HTTPTimeout:         httpTimeout,
	}, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", key, v, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", key, v)
	}
	return parsed, nil
}
