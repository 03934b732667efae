// =================================
// File: gmgn/config.go
// =================================
package gmgn

import "time"

const (
	// DefaultBaseURL is the public rank endpoint root.
	DefaultBaseURL = "https://gmgn.ai/defi/quotation/v1/rank"

	// DefaultRugcheckBaseURL is the rugcheck.xyz API root.
	DefaultRugcheckBaseURL = "https://api.rugcheck.xyz/v1"

	DefaultTimeout      = 60 * time.Second
	DefaultMaxRetries   = 3
	DefaultRequestDelay = time.Second
)

// Settings configures the API facade and its transport. Zero URLs and
// durations fall back to the package defaults; MaxRetries zero disables
// retries and a negative value selects the default.
type Settings struct {
	BaseURL         string
	RugcheckBaseURL string

	// Timeout is the per-request deadline. Exceeding it counts as a
	// transient failure eligible for retry.
	Timeout time.Duration

	// MaxRetries is the number of retries after the initial attempt; every
	// retry runs on a freshly created bypass session.
	MaxRetries int

	// RequestDelay spaces sequential requests and is also the fixed delay
	// between retry attempts.
	RequestDelay time.Duration

	Verbose bool
}

// DefaultSettings returns the settings used by New when fields are left zero.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:         DefaultBaseURL,
		RugcheckBaseURL: DefaultRugcheckBaseURL,
		Timeout:         DefaultTimeout,
		MaxRetries:      DefaultMaxRetries,
		RequestDelay:    DefaultRequestDelay,
	}
}

func (s Settings) withDefaults() Settings {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.RugcheckBaseURL == "" {
		s.RugcheckBaseURL = DefaultRugcheckBaseURL
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	if s.MaxRetries < 0 {
		s.MaxRetries = DefaultMaxRetries
	}
	if s.RequestDelay <= 0 {
		s.RequestDelay = DefaultRequestDelay
	}
	return s
}
