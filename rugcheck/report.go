// =================================
// File: rugcheck/report.go
// =================================
package rugcheck

// Report mirrors the relevant slice of the rugcheck.xyz token report. The
// upstream payload carries 30+ fields; unknown ones are ignored on decode.
type Report struct {
	Mint         string `json:"mint"`
	TokenProgram string `json:"tokenProgram"`
	Creator      string `json:"creator"`

	TokenMeta TokenMeta `json:"tokenMeta"`

	// Score is the raw upstream safety score; ScoreNormalised is its 0..1
	// form when the service provides one (higher = safer for both).
	Score           float64  `json:"score"`
	ScoreNormalised *float64 `json:"score_normalised"`

	Rugged bool   `json:"rugged"`
	Risks  []Risk `json:"risks"`

	Price                float64 `json:"price"`
	TotalHolders         int64   `json:"totalHolders"`
	TotalMarketLiquidity float64 `json:"totalMarketLiquidity"`
	TotalLPProviders     int64   `json:"totalLPProviders"`

	Markets      []Market      `json:"markets"`
	Verification *Verification `json:"verification"`

	DetectedAt string `json:"detectedAt"`
}

type TokenMeta struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	URI             string `json:"uri"`
	Mutable         bool   `json:"mutable"`
	UpdateAuthority string `json:"updateAuthority"`
}

// Risk is one named finding from the upstream risk engine.
type Risk struct {
	Name        string  `json:"name"`
	Value       string  `json:"value"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
	Level       string  `json:"level"`
}

type Market struct {
	Pubkey     string `json:"pubkey"`
	MarketType string `json:"marketType"`
	MintA      string `json:"mintA"`
	MintB      string `json:"mintB"`
}

type Verification struct {
	Mint        string `json:"mint"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Jup         bool   `json:"jup_verified"`
}

// RiskResult is the normalized outcome handed to callers. RiskScore is the
// inverse of the upstream safety score: 0.0 is safest, 1.0 riskiest. It is
// correlated with a Token only by mint address at call time.
type RiskResult struct {
	Mint   string
	Name   string
	Symbol string

	RiskScore       float64
	RugcheckScore   float64
	NormalizedScore float64
	Rugged          bool

	Price                float64
	TotalHolders         int64
	TotalMarketLiquidity float64
	TotalLPProviders     int64
	MarketCount          int
	Verified             bool

	Risks []Risk
}
