// =================================
// File: gmgn/client.go
// =================================
package gmgn

import (
	"context"
	"fmt"
	"sort"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/gmgn-screener/rugcheck"
)

// RugChecker is the rug-risk collaborator boundary. *rugcheck.Client is the
// production implementation.
type RugChecker interface {
	Check(ctx context.Context, mint string) (*rugcheck.RiskResult, error)
}

// TokenRisk pairs a token with its rug-risk result. Risk is nil when the
// check failed for this token.
type TokenRisk struct {
	Token Token
	Risk  *rugcheck.RiskResult
}

// API is the query facade: it builds parameters, fetches rankings through
// the bypass transport, parses them into Token records and applies the
// filter chain. All calls are synchronous and strictly sequential.
type API struct {
	settings  Settings
	transport Transport
	rug       RugChecker
	logger    *zap.Logger
}

// New creates the facade with the default bypass transport and rugcheck
// client. A nil logger disables logging.
func New(settings Settings, logger *zap.Logger) *API {
	settings = settings.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	checker := rugcheck.New(rugcheck.Settings{
		BaseURL: settings.RugcheckBaseURL,
		Timeout: settings.Timeout,
	}, logger)
	return NewWithTransport(settings, logger, NewHTTPTransport(settings, logger), checker)
}

// NewWithTransport wires custom collaborators; used by tests and callers
// that bring their own transport.
func NewWithTransport(settings Settings, logger *zap.Logger, transport Transport, checker RugChecker) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		settings:  settings.withDefaults(),
		transport: transport,
		rug:       checker,
		logger:    logger.Named("gmgn"),
	}
}

// GetTokenRankings fetches one ranking page: a single request, a single
// parse, no client-side filtering.
func (a *API) GetTokenRankings(ctx context.Context, params QueryParameters) ([]Token, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/swaps/%s", a.settings.BaseURL, params.Chain, params.Period)

	a.logger.Debug("fetching token rankings",
		zap.String("chain", string(params.Chain)),
		zap.String("criteria", string(params.Criteria)),
		zap.String("period", string(params.Period)))

	body, err := a.transport.Get(ctx, endpoint, params.Values())
	if err != nil {
		return nil, err
	}

	tokens, err := ParseRankResponse(body)
	if err != nil {
		return nil, err
	}

	a.logger.Info("parsed token rankings",
		zap.String("chain", string(params.Chain)),
		zap.Int("tokens", len(tokens)))
	return tokens, nil
}

// GetTokensWithFilter fetches rankings and applies one filter stage.
func (a *API) GetTokensWithFilter(ctx context.Context, params QueryParameters, filter TokenFilter) ([]Token, error) {
	tokens, err := a.GetTokenRankings(ctx, params)
	if err != nil {
		return nil, err
	}
	return filter.Apply(tokens), nil
}

// GetFilteredTokens fetches rankings, applies the threshold filter and
// truncates to limit, preserving the server-side order.
func (a *API) GetFilteredTokens(ctx context.Context, params QueryParameters, criteria FilterCriteria, limit int) ([]Token, error) {
	return a.GetTokensWithFilter(ctx, params,
		NewCompositeFilter(NewCriteriaFilter(criteria), NewTopNFilter(limit)))
}

// GetTopVolumeTokens returns the top volume tokens for a chain.
func (a *API) GetTopVolumeTokens(ctx context.Context, chain Chain, period TimePeriod, limit int) ([]Token, error) {
	return a.GetTokensWithFilter(ctx, NewVolumeQuery(chain, period), NewTopNFilter(limit))
}

// GetTopGainers returns the top gaining tokens. The sort criteria follows
// the requested window.
func (a *API) GetTopGainers(ctx context.Context, chain Chain, period TimePeriod, limit int) ([]Token, error) {
	return a.GetTokensWithFilter(ctx, NewGainersQuery(chain, period), NewTopNFilter(limit))
}

// GetTopLosers mirrors GetTopGainers with ascending order.
func (a *API) GetTopLosers(ctx context.Context, chain Chain, period TimePeriod, limit int) ([]Token, error) {
	params := NewGainersQuery(chain, period)
	params.Direction = SortAscending
	return a.GetTokensWithFilter(ctx, params, NewTopNFilter(limit))
}

// GetHighValueTokens returns volume-ranked tokens above the given volume
// and market-cap floors.
func (a *API) GetHighValueTokens(ctx context.Context, chain Chain, minVolume, minMarketCap float64, limit int) ([]Token, error) {
	return a.GetFilteredTokens(ctx, NewVolumeQuery(chain, PeriodDay),
		FilterCriteria{
			MinVolume:        minVolume,
			MinMarketCap:     minMarketCap,
			ExcludeHoneypots: true,
		}, limit)
}

// GetSafeTokens returns rankings with every safety filter applied on the
// server side; no client-side threshold filtering is needed.
func (a *API) GetSafeTokens(ctx context.Context, chain Chain, criteria SortCriteria, limit int) ([]Token, error) {
	return a.GetTokensWithFilter(ctx, NewSafeQuery(chain, criteria), NewTopNFilter(limit))
}

// GetSmallCapTokens returns small-cap tokens: market cap below 200K,
// liquidity under 150K, volume under 300K, at least one day old.
func (a *API) GetSmallCapTokens(ctx context.Context, chain Chain, criteria SortCriteria, limit int) ([]Token, error) {
	params := QueryParameters{
		Chain:       chain,
		Period:      PeriodDay,
		Criteria:    criteria,
		Direction:   SortDescending,
		NotHoneypot: true,
	}
	return a.GetFilteredTokens(ctx, params,
		FilterCriteria{
			MaxMarketCap:     200_000,
			MaxLiquidity:     150_000,
			MaxVolume:        300_000,
			MinAgeDays:       1,
			ExcludeHoneypots: true,
		}, limit)
}

// GetCrossRankedTokens intersects rankings across several criteria: the
// first criteria seeds the candidate set (top perStep entries), every
// further criteria keeps only candidates present in its full ranking, and
// the survivors are ordered by their rank under the last criteria.
func (a *API) GetCrossRankedTokens(ctx context.Context, chain Chain, period TimePeriod, criteria []SortCriteria, perStep int) ([]Token, error) {
	if len(criteria) == 0 {
		return nil, fmt.Errorf("at least one sort criteria is required")
	}

	params := QueryParameters{
		Chain:       chain,
		Period:      period,
		Criteria:    criteria[0],
		Direction:   SortDescending,
		NotHoneypot: true,
	}
	current, err := a.GetTokensWithFilter(ctx, params, NewTopNFilter(perStep))
	if err != nil {
		return nil, err
	}

	lastRanks := make(map[int64]int, len(current))
	for rank, token := range current {
		lastRanks[token.ID] = rank + 1
	}

	for _, next := range criteria[1:] {
		params.Criteria = next
		full, err := a.GetTokenRankings(ctx, params)
		if err != nil {
			return nil, err
		}

		ranks := make(map[int64]int, len(full))
		for rank, token := range full {
			ranks[token.ID] = rank + 1
		}

		survivors := current[:0:0]
		for _, token := range current {
			if rank, ok := ranks[token.ID]; ok {
				survivors = append(survivors, token)
				lastRanks[token.ID] = rank
			}
		}
		current = survivors

		a.logger.Debug("cross-ranking step",
			zap.String("criteria", string(next)),
			zap.Int("survivors", len(current)))
	}

	sort.SliceStable(current, func(i, j int) bool {
		return lastRanks[current[i].ID] < lastRanks[current[j].ID]
	})
	return current, nil
}

// CheckTokenRugRisk runs one rug-risk check. Chains other than Solana fail
// fast with ErrUnsupportedChain before any network call, and the address
// must be a valid base58 mint.
func (a *API) CheckTokenRugRisk(ctx context.Context, address string, chain Chain) (*rugcheck.RiskResult, error) {
	if chain != ChainSolana {
		return nil, ErrUnsupportedChain
	}
	if address == "" {
		return nil, ErrEmptyAddress
	}
	if _, err := solana.PublicKeyFromBase58(address); err != nil {
		return nil, fmt.Errorf("invalid token mint %q: %w", address, err)
	}
	return a.rug.Check(ctx, address)
}

// CheckTokensRugRisk checks each token sequentially and maps addresses to
// results. Per-token failures are logged and excluded, never propagated.
func (a *API) CheckTokensRugRisk(ctx context.Context, tokens []Token, chain Chain) (map[string]*rugcheck.RiskResult, error) {
	if chain != ChainSolana {
		return nil, ErrUnsupportedChain
	}

	results := make(map[string]*rugcheck.RiskResult, len(tokens))
	for _, token := range tokens {
		result, err := a.CheckTokenRugRisk(ctx, token.Address, chain)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			a.logger.Warn("rugcheck failed, excluding token",
				zap.String("symbol", token.Symbol),
				zap.String("address", token.Address),
				zap.Error(err))
			continue
		}
		results[token.Address] = result
	}
	return results, nil
}

// GetTokensWithRugcheck fetches rankings and annotates every token with its
// risk result; a failed check leaves Risk nil for that token.
func (a *API) GetTokensWithRugcheck(ctx context.Context, params QueryParameters) ([]TokenRisk, error) {
	tokens, err := a.GetTokenRankings(ctx, params)
	if err != nil {
		return nil, err
	}

	pairs := make([]TokenRisk, 0, len(tokens))
	for _, token := range tokens {
		result, err := a.CheckTokenRugRisk(ctx, token.Address, params.Chain)
		if err != nil {
			if ctx.Err() != nil {
				return pairs, ctx.Err()
			}
			a.logger.Warn("rugcheck failed",
				zap.String("symbol", token.Symbol),
				zap.Error(err))
			result = nil
		}
		pairs = append(pairs, TokenRisk{Token: token, Risk: result})
	}
	return pairs, nil
}

// candidateFactor oversizes the rugcheck candidate list, since a share of
// candidates will fail verification.
const candidateFactor = 3

// GetRugcheckVerifiedTokens fetches a candidate ranking and keeps tokens
// whose risk score does not exceed maxRiskScore, checking sequentially and
// stopping once limit tokens qualify. A failed check excludes the token.
func (a *API) GetRugcheckVerifiedTokens(ctx context.Context, chain Chain, criteria SortCriteria, limit int, maxRiskScore float64) ([]Token, error) {
	params := QueryParameters{
		Chain:       chain,
		Period:      PeriodDay,
		Criteria:    criteria,
		Direction:   SortDescending,
		NotHoneypot: true,
	}
	candidates, err := a.GetTokensWithFilter(ctx, params, NewTopNFilter(limit*candidateFactor))
	if err != nil {
		return nil, err
	}

	verified := make([]Token, 0, limit)
	for _, token := range candidates {
		if len(verified) >= limit {
			break
		}

		result, err := a.CheckTokenRugRisk(ctx, token.Address, chain)
		if err != nil {
			if ctx.Err() != nil {
				return verified, ctx.Err()
			}
			a.logger.Warn("rugcheck failed, excluding token",
				zap.String("symbol", token.Symbol),
				zap.Error(err))
			continue
		}
		if result.RiskScore > maxRiskScore {
			a.logger.Debug("token failed rugcheck",
				zap.String("symbol", token.Symbol),
				zap.Float64("risk_score", result.RiskScore))
			continue
		}
		verified = append(verified, token)
	}

	a.logger.Info("rugcheck verification finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("verified", len(verified)))
	return verified, nil
}
