package gmgn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/gmgn-screener/rugcheck"
)

// Well-known Solana mints used as valid base58 addresses in tests.
const (
	mintWSOL = "So11111111111111111111111111111111111111112"
	mintUSDC = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	mintUSDT = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
)

// stubTransport replays canned ranking bodies and records every request.
type stubTransport struct {
	bodies [][]byte
	calls  int

	gotURLs   []string
	gotParams []url.Values
}

func (s *stubTransport) Get(_ context.Context, rawURL string, params url.Values) ([]byte, error) {
	s.gotURLs = append(s.gotURLs, rawURL)
	s.gotParams = append(s.gotParams, params)

	body := s.bodies[s.calls]
	if s.calls < len(s.bodies)-1 {
		s.calls++
	}
	return body, nil
}

// stubChecker returns scripted risk results keyed by mint.
type stubChecker struct {
	results map[string]*rugcheck.RiskResult
	errs    map[string]error
	calls   int
}

func (s *stubChecker) Check(_ context.Context, mint string) (*rugcheck.RiskResult, error) {
	s.calls++
	if err, ok := s.errs[mint]; ok {
		return nil, err
	}
	if result, ok := s.results[mint]; ok {
		return result, nil
	}
	return nil, fmt.Errorf("no report for %s", mint)
}

func rankBody(t *testing.T, entries ...map[string]any) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"code": 0,
		"msg":  "success",
		"data": map[string]any{"rank": entries},
	})
	require.NoError(t, err)
	return body
}

func testAPI(t *testing.T, transport Transport, checker RugChecker) *API {
	t.Helper()
	return NewWithTransport(DefaultSettings(), zaptest.NewLogger(t), transport, checker)
}

func TestGetTokenRankingsBuildsEndpointAndParams(t *testing.T) {
	transport := &stubTransport{bodies: [][]byte{rankBody(t)}}
	api := testAPI(t, transport, &stubChecker{})

	_, err := api.GetTokenRankings(context.Background(), NewVolumeQuery(ChainSolana, PeriodOneHour))
	require.NoError(t, err)

	require.Len(t, transport.gotURLs, 1)
	assert.Equal(t, DefaultBaseURL+"/sol/swaps/1h", transport.gotURLs[0])

	params := transport.gotParams[0]
	assert.Equal(t, "volume", params.Get("orderby"))
	assert.Equal(t, "desc", params.Get("direction"))
	assert.Equal(t, []string{"not_honeypot"}, params["filters[]"])
}

func TestGetTokenRankingsRejectsInvalidParams(t *testing.T) {
	transport := &stubTransport{bodies: [][]byte{rankBody(t)}}
	api := testAPI(t, transport, &stubChecker{})

	_, err := api.GetTokenRankings(context.Background(), QueryParameters{
		Chain:    Chain("dogecoin"),
		Period:   PeriodDay,
		Criteria: SortVolume,
	})
	require.Error(t, err)
	assert.Zero(t, transport.calls, "invalid params must not reach the transport")
	assert.Empty(t, transport.gotURLs)
}

func TestGetFilteredTokensEndToEnd(t *testing.T) {
	body := rankBody(t,
		map[string]any{"id": 1, "symbol": "DUST", "address": "a1", "volume": 50.0},
		map[string]any{"id": 2, "symbol": "WHALE", "address": "a2", "volume": 2_000_000.0},
		map[string]any{"id": 3, "symbol": "FISH", "address": "a3", "volume": 500_000.0},
	)
	transport := &stubTransport{bodies: [][]byte{body}}
	api := testAPI(t, transport, &stubChecker{})

	tokens, err := api.GetFilteredTokens(context.Background(),
		NewVolumeQuery(ChainSolana, PeriodDay),
		FilterCriteria{MinVolume: 100_000}, 10)
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.Equal(t, "WHALE", tokens[0].Symbol)
	assert.Equal(t, "FISH", tokens[1].Symbol)
}

func TestGetTopVolumeTokensTruncates(t *testing.T) {
	body := rankBody(t,
		map[string]any{"id": 1, "symbol": "A", "volume": 300.0},
		map[string]any{"id": 2, "symbol": "B", "volume": 200.0},
		map[string]any{"id": 3, "symbol": "C", "volume": 100.0},
	)
	transport := &stubTransport{bodies: [][]byte{body}}
	api := testAPI(t, transport, &stubChecker{})

	tokens, err := api.GetTopVolumeTokens(context.Background(), ChainSolana, PeriodDay, 2)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "A", tokens[0].Symbol)
	assert.Equal(t, "B", tokens[1].Symbol)
}

func TestGetTopLosersRequestsAscendingOrder(t *testing.T) {
	transport := &stubTransport{bodies: [][]byte{rankBody(t)}}
	api := testAPI(t, transport, &stubChecker{})

	_, err := api.GetTopLosers(context.Background(), ChainSolana, PeriodOneHour, 5)
	require.NoError(t, err)

	params := transport.gotParams[0]
	assert.Equal(t, "asc", params.Get("direction"))
	assert.Equal(t, "change1h", params.Get("orderby"))
}

func TestGetSafeTokensEnablesAllServerFilters(t *testing.T) {
	transport := &stubTransport{bodies: [][]byte{rankBody(t)}}
	api := testAPI(t, transport, &stubChecker{})

	_, err := api.GetSafeTokens(context.Background(), ChainSolana, SortVolume, 5)
	require.NoError(t, err)

	params := transport.gotParams[0]
	assert.Equal(t, []string{"not_honeypot", "verified", "renounced"}, params["filters[]"])
}

func TestGetCrossRankedTokens(t *testing.T) {
	// Volume seed: top 3 candidates.
	volume := rankBody(t,
		map[string]any{"id": 1, "symbol": "A", "volume": 900.0},
		map[string]any{"id": 2, "symbol": "B", "volume": 800.0},
		map[string]any{"id": 3, "symbol": "C", "volume": 700.0},
	)
	// Holder ranking misses C, so it drops out; B outranks A here and
	// the survivors reorder accordingly.
	holders := rankBody(t,
		map[string]any{"id": 2, "symbol": "B", "holder_count": 500},
		map[string]any{"id": 4, "symbol": "D", "holder_count": 400},
		map[string]any{"id": 1, "symbol": "A", "holder_count": 300},
	)
	transport := &stubTransport{bodies: [][]byte{volume, holders}}
	api := testAPI(t, transport, &stubChecker{})

	tokens, err := api.GetCrossRankedTokens(context.Background(), ChainSolana, PeriodDay,
		[]SortCriteria{SortVolume, SortHolderCount}, 3)
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.Equal(t, "B", tokens[0].Symbol)
	assert.Equal(t, "A", tokens[1].Symbol)
}

func TestGetCrossRankedTokensRequiresCriteria(t *testing.T) {
	api := testAPI(t, &stubTransport{bodies: [][]byte{rankBody(t)}}, &stubChecker{})

	_, err := api.GetCrossRankedTokens(context.Background(), ChainSolana, PeriodDay, nil, 3)
	require.Error(t, err)
}

func TestCheckTokenRugRiskGuards(t *testing.T) {
	transport := &stubTransport{bodies: [][]byte{rankBody(t)}}
	checker := &stubChecker{}
	api := testAPI(t, transport, checker)

	_, err := api.CheckTokenRugRisk(context.Background(), mintWSOL, ChainEthereum)
	assert.ErrorIs(t, err, ErrUnsupportedChain)

	_, err = api.CheckTokenRugRisk(context.Background(), "", ChainSolana)
	assert.ErrorIs(t, err, ErrEmptyAddress)

	_, err = api.CheckTokenRugRisk(context.Background(), "not-a-mint!!!", ChainSolana)
	require.Error(t, err)

	assert.Zero(t, checker.calls, "guards must fail before any network call")
	assert.Empty(t, transport.gotURLs)
}

func TestCheckTokenRugRisk(t *testing.T) {
	checker := &stubChecker{results: map[string]*rugcheck.RiskResult{
		mintWSOL: {Mint: mintWSOL, RiskScore: 0.1},
	}}
	api := testAPI(t, &stubTransport{bodies: [][]byte{rankBody(t)}}, checker)

	result, err := api.CheckTokenRugRisk(context.Background(), mintWSOL, ChainSolana)
	require.NoError(t, err)
	assert.Equal(t, 0.1, result.RiskScore)
	assert.Equal(t, 1, checker.calls)
}

func TestCheckTokensRugRiskExcludesFailures(t *testing.T) {
	tokens := []Token{
		{Symbol: "WSOL", Address: mintWSOL},
		{Symbol: "USDC", Address: mintUSDC},
		{Symbol: "USDT", Address: mintUSDT},
	}
	checker := &stubChecker{
		results: map[string]*rugcheck.RiskResult{
			mintWSOL: {Mint: mintWSOL, RiskScore: 0.1},
			mintUSDT: {Mint: mintUSDT, RiskScore: 0.3},
		},
		errs: map[string]error{
			mintUSDC: fmt.Errorf("report unavailable"),
		},
	}
	api := testAPI(t, &stubTransport{bodies: [][]byte{rankBody(t)}}, checker)

	results, err := api.CheckTokensRugRisk(context.Background(), tokens, ChainSolana)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Contains(t, results, mintWSOL)
	assert.Contains(t, results, mintUSDT)
	assert.NotContains(t, results, mintUSDC)
}

func TestGetTokensWithRugcheckKeepsFailedChecks(t *testing.T) {
	body := rankBody(t,
		map[string]any{"id": 1, "symbol": "WSOL", "address": mintWSOL, "volume": 100.0},
		map[string]any{"id": 2, "symbol": "USDC", "address": mintUSDC, "volume": 90.0},
	)
	checker := &stubChecker{
		results: map[string]*rugcheck.RiskResult{
			mintWSOL: {Mint: mintWSOL, RiskScore: 0.1},
		},
		errs: map[string]error{
			mintUSDC: fmt.Errorf("report unavailable"),
		},
	}
	api := testAPI(t, &stubTransport{bodies: [][]byte{body}}, checker)

	pairs, err := api.GetTokensWithRugcheck(context.Background(), NewVolumeQuery(ChainSolana, PeriodDay))
	require.NoError(t, err)

	require.Len(t, pairs, 2)
	require.NotNil(t, pairs[0].Risk)
	assert.Equal(t, 0.1, pairs[0].Risk.RiskScore)
	assert.Nil(t, pairs[1].Risk, "failed check keeps the token with nil risk")
}

func TestGetRugcheckVerifiedTokens(t *testing.T) {
	body := rankBody(t,
		map[string]any{"id": 1, "symbol": "WSOL", "address": mintWSOL, "volume": 900.0},
		map[string]any{"id": 2, "symbol": "USDC", "address": mintUSDC, "volume": 800.0},
		map[string]any{"id": 3, "symbol": "USDT", "address": mintUSDT, "volume": 700.0},
	)
	checker := &stubChecker{
		results: map[string]*rugcheck.RiskResult{
			mintWSOL: {Mint: mintWSOL, RiskScore: 0.1}, // qualifies
			mintUSDC: {Mint: mintUSDC, RiskScore: 0.9}, // too risky
			mintUSDT: {Mint: mintUSDT, RiskScore: 0.2}, // qualifies
		},
	}
	api := testAPI(t, &stubTransport{bodies: [][]byte{body}}, checker)

	tokens, err := api.GetRugcheckVerifiedTokens(context.Background(), ChainSolana, SortVolume, 2, 0.5)
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.Equal(t, "WSOL", tokens[0].Symbol)
	assert.Equal(t, "USDT", tokens[1].Symbol)
}

func TestGetRugcheckVerifiedTokensStopsAtLimit(t *testing.T) {
	body := rankBody(t,
		map[string]any{"id": 1, "symbol": "WSOL", "address": mintWSOL, "volume": 900.0},
		map[string]any{"id": 2, "symbol": "USDC", "address": mintUSDC, "volume": 800.0},
		map[string]any{"id": 3, "symbol": "USDT", "address": mintUSDT, "volume": 700.0},
	)
	checker := &stubChecker{
		results: map[string]*rugcheck.RiskResult{
			mintWSOL: {Mint: mintWSOL, RiskScore: 0.0},
			mintUSDC: {Mint: mintUSDC, RiskScore: 0.0},
			mintUSDT: {Mint: mintUSDT, RiskScore: 0.0},
		},
	}
	api := testAPI(t, &stubTransport{bodies: [][]byte{body}}, checker)

	tokens, err := api.GetRugcheckVerifiedTokens(context.Background(), ChainSolana, SortVolume, 2, 0.5)
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.Equal(t, 2, checker.calls, "verification stops once the limit is reached")
}
