// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/gmgn-screener/gmgn"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, gmgn.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, gmgn.DefaultRugcheckBaseURL, cfg.RugcheckBaseURL)
	assert.Equal(t, DefaultChain, cfg.Chain)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, DefaultRequestDelay, cfg.RequestDelay)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `{
		"chain": "eth",
		"timeout": 30,
		"max_retries": 5,
		"request_delay": 0.5,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "eth", cfg.Chain)
	assert.Equal(t, 30, cfg.Timeout)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 0.5, cfg.RequestDelay)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("GMGN_SCREENER_BASE_URL", "https://proxy.example.com/rank")
	t.Setenv("GMGN_SCREENER_CHAIN", "bsc")

	path := writeConfig(t, `{"chain": "eth"}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://proxy.example.com/rank", cfg.BaseURL)
	assert.Equal(t, "bsc", cfg.Chain, "environment wins over the config file")
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad base url", `{"base_url": "ftp://gmgn.ai"}`},
		{"bad rugcheck url", `{"rugcheck_base_url": "not a url at all"}`},
		{"unknown chain", `{"chain": "dogecoin"}`},
		{"zero timeout", `{"timeout": 0}`},
		{"negative retries", `{"max_retries": -1}`},
		{"negative delay", `{"request_delay": -0.5}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSettingsMapping(t *testing.T) {
	cfg := Config{
		BaseURL:         "https://gmgn.ai/defi/quotation/v1/rank",
		RugcheckBaseURL: "https://api.rugcheck.xyz/v1",
		Timeout:         45,
		MaxRetries:      2,
		RequestDelay:    1.5,
		Verbose:         true,
	}

	settings := cfg.Settings()
	assert.Equal(t, 45*time.Second, settings.Timeout)
	assert.Equal(t, 2, settings.MaxRetries)
	assert.Equal(t, 1500*time.Millisecond, settings.RequestDelay)
	assert.True(t, settings.Verbose)
}
