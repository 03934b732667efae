// =================================
// File: rugcheck/client.go
// =================================
package rugcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public rugcheck.xyz API root.
	DefaultBaseURL = "https://api.rugcheck.xyz/v1"

	DefaultTimeout = 30 * time.Second
)

// Settings configures the rugcheck client.
type Settings struct {
	BaseURL string
	Timeout time.Duration
}

// Doer executes one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches token reports from rugcheck.xyz and reduces them to
// RiskResult records.
type Client struct {
	baseURL string
	doer    Doer
	logger  *zap.Logger

	// Normalizer computes RiskScore from a report; defaults to
	// DefaultNormalizer.
	Normalizer ScoreNormalizer
}

// New создает новый rugcheck клиент
func New(settings Settings, logger *zap.Logger) *Client {
	if settings.BaseURL == "" {
		settings.BaseURL = DefaultBaseURL
	}
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    settings.BaseURL,
		doer:       &http.Client{Timeout: settings.Timeout},
		logger:     logger.Named("rugcheck"),
		Normalizer: DefaultNormalizer,
	}
}

// Check fetches the report for one mint address and normalizes it. The call
// is anonymous; the endpoint covers Solana tokens only, which the facade
// enforces before reaching this client.
func (c *Client) Check(ctx context.Context, mint string) (*RiskResult, error) {
	url := fmt.Sprintf("%s/tokens/%s/report", c.baseURL, mint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rugcheck status %d: %s", resp.StatusCode, string(body))
	}

	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if report.Mint == "" {
		report.Mint = mint
	}

	result := c.resultFromReport(&report)

	c.logger.Debug("rugcheck completed",
		zap.String("mint", result.Mint),
		zap.Float64("risk_score", result.RiskScore),
		zap.Bool("rugged", result.Rugged))

	return result, nil
}

func (c *Client) resultFromReport(report *Report) *RiskResult {
	normalizer := c.Normalizer
	if normalizer == nil {
		normalizer = DefaultNormalizer
	}

	// score_normalised absent means the upstream gave no 0..1 form; the
	// passthrough keeps a medium-risk placeholder instead.
	normalized := 0.5
	if report.ScoreNormalised != nil {
		normalized = *report.ScoreNormalised
	}

	return &RiskResult{
		Mint:   report.Mint,
		Name:   report.TokenMeta.Name,
		Symbol: report.TokenMeta.Symbol,

		RiskScore:       normalizer(report),
		RugcheckScore:   report.Score,
		NormalizedScore: normalized,
		Rugged:          report.Rugged,

		Price:                report.Price,
		TotalHolders:         report.TotalHolders,
		TotalMarketLiquidity: report.TotalMarketLiquidity,
		TotalLPProviders:     report.TotalLPProviders,
		MarketCount:          len(report.Markets),
		Verified:             report.Verification != nil && report.Verification.Jup,

		Risks: report.Risks,
	}
}
