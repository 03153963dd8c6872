package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

// Config is read from the environment (and a .env file, see cmd/api).
type Config struct {
	Port string
	// DataDir holds disruptions-<year>.json and train-map.json. Ignored when
	// DataURL is set.
	DataDir string
	// DataURL serves the same files over HTTP.
	DataURL string

	Timezone     string
	Location     *time.Location
	FetchTimeout time.Duration
	MaxRetryTime time.Duration
	CacheSize    int
	CacheTTL     time.Duration
}

func Default() Config {
	return Config{
		Port:         "8080",
		DataDir:      "Data",
		Timezone:     "Europe/Amsterdam",
		FetchTimeout: 12 * time.Second,
		MaxRetryTime: 20 * time.Second,
		CacheSize:    32,
		CacheTTL:     10 * time.Minute,
	}
}

// FromEnv overlays environment variables on the defaults.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("PORT", &cfg.Port)
	str("DATA_DIR", &cfg.DataDir)
	str("DATA_URL", &cfg.DataURL)
	str("TIMEZONE", &cfg.Timezone)

	if err := seconds(lookup, "FETCH_TIMEOUT_SEC", &cfg.FetchTimeout); err != nil {
		return Config{}, err
	}
	if err := seconds(lookup, "FETCH_MAX_RETRY_SEC", &cfg.MaxRetryTime); err != nil {
		return Config{}, err
	}
	if err := seconds(lookup, "CACHE_TTL_SEC", &cfg.CacheTTL); err != nil {
		return Config{}, err
	}
	if v, ok := lookup("CACHE_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("CACHE_SIZE: %w", err)
		}
		cfg.CacheSize = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func seconds(lookup func(string) (string, bool), key string, dst *time.Duration) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = time.Duration(n) * time.Second
	return nil
}

// Validate checks ranges and resolves Timezone into Location.
func (c *Config) Validate() error {
	if c.DataDir == "" && c.DataURL == "" {
		return fmt.Errorf("one of DATA_DIR or DATA_URL is required")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.MaxRetryTime < 0 {
		return fmt.Errorf("max retry time must not be negative, got %s", c.MaxRetryTime)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache size must not be negative, got %d", c.CacheSize)
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	c.Location = loc
	return nil
}
