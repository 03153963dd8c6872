package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Data", cfg.DataDir)
	assert.Equal(t, 12*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 32, cfg.CacheSize)
	require.NotNil(t, cfg.Location)
	assert.Equal(t, "Europe/Amsterdam", cfg.Location.String())
}

func TestOverrides(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(map[string]string{
		"PORT":                "9090",
		"DATA_URL":            "https://example.org/Data",
		"TIMEZONE":            "UTC",
		"FETCH_TIMEOUT_SEC":   "3",
		"FETCH_MAX_RETRY_SEC": "0",
		"CACHE_SIZE":          "0",
		"CACHE_TTL_SEC":       "60",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://example.org/Data", cfg.DataURL)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, time.Duration(0), cfg.MaxRetryTime)
	assert.Equal(t, 0, cfg.CacheSize)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
}

func TestInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad timeout":   {"FETCH_TIMEOUT_SEC": "soon"},
		"zero timeout":  {"FETCH_TIMEOUT_SEC": "0"},
		"bad cache":     {"CACHE_SIZE": "-1"},
		"bad cache num": {"CACHE_SIZE": "lots"},
		"bad timezone":  {"TIMEZONE": "Mars/Olympus"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := fromLookup(lookupFrom(env))
			assert.Error(t, err)
		})
	}
}
