// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rovshanmuradov/gmgn-screener/gmgn"
)

// Config is the file/env configuration surface of the screener CLI.
type Config struct {
	BaseURL         string  `mapstructure:"base_url"`
	RugcheckBaseURL string  `mapstructure:"rugcheck_base_url"`
	Chain           string  `mapstructure:"chain"`
	Timeout         int     `mapstructure:"timeout"`       // seconds
	MaxRetries      int     `mapstructure:"max_retries"`   // retries after the initial attempt
	RequestDelay    float64 `mapstructure:"request_delay"` // seconds
	Verbose         bool    `mapstructure:"verbose"`
	LogFile         string  `mapstructure:"log_file"`
}

const (
	DefaultChain        = "sol"
	DefaultTimeout      = 60
	DefaultMaxRetries   = 3
	DefaultRequestDelay = 1.0
	DefaultLogFile      = "screener.log"
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"base_url":          gmgn.DefaultBaseURL,
		"rugcheck_base_url": gmgn.DefaultRugcheckBaseURL,
		"chain":             DefaultChain,
		"timeout":           DefaultTimeout,
		"max_retries":       DefaultMaxRetries,
		"request_delay":     DefaultRequestDelay,
		"log_file":          DefaultLogFile,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvironmentVariables(v, &cfg)

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if err := validateURL(cfg.BaseURL); err != nil {
		return errors.New("invalid base_url")
	}
	if err := validateURL(cfg.RugcheckBaseURL); err != nil {
		return errors.New("invalid rugcheck_base_url")
	}
	if !gmgn.Chain(cfg.Chain).Valid() {
		return errors.New("unknown chain in configuration")
	}
	if cfg.Timeout <= 0 {
		return errors.New("invalid timeout")
	}
	if cfg.MaxRetries < 0 {
		return errors.New("invalid max_retries count")
	}
	if cfg.RequestDelay < 0 {
		return errors.New("invalid request_delay")
	}
	return nil
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, "http") {
		return errors.New("invalid URL protocol")
	}
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) {
	v.AutomaticEnv()
	v.SetEnvPrefix("GMGN_SCREENER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if envBase := v.GetString("BASE_URL"); envBase != "" {
		cfg.BaseURL = envBase
	}
	if envRug := v.GetString("RUGCHECK_BASE_URL"); envRug != "" {
		cfg.RugcheckBaseURL = envRug
	}
	if envChain := v.GetString("CHAIN"); envChain != "" {
		cfg.Chain = envChain
	}
}

// Settings maps the file config onto the library settings record.
func (cfg *Config) Settings() gmgn.Settings {
	return gmgn.Settings{
		BaseURL:         cfg.BaseURL,
		RugcheckBaseURL: cfg.RugcheckBaseURL,
		Timeout:         time.Duration(cfg.Timeout) * time.Second,
		MaxRetries:      cfg.MaxRetries,
		RequestDelay:    time.Duration(cfg.RequestDelay * float64(time.Second)),
		Verbose:         cfg.Verbose,
	}
}
