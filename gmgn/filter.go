// =================================
// File: gmgn/filter.go
// =================================
package gmgn

import "time"

// FilterCriteria is an optional-bounds record for client-side threshold
// filtering. A zero bound means "no constraint", matching how the token
// fields themselves default to zero at the parse boundary.
type FilterCriteria struct {
	MinVolume float64
	MaxVolume float64

	MinMarketCap float64
	MaxMarketCap float64

	MinLiquidity float64
	MaxLiquidity float64

	MinHolderCount int64

	MinPriceChange float64
	MaxPriceChange float64

	MinAgeDays float64
	MaxAgeDays float64

	ExcludeHoneypots bool
}

// Matches reports whether every present bound holds for the token.
func (c FilterCriteria) Matches(token Token) bool {
	return c.matchesAt(token, time.Now())
}

func (c FilterCriteria) matchesAt(token Token, now time.Time) bool {
	if c.ExcludeHoneypots && token.IsHoneypot {
		return false
	}
	if c.MinVolume > 0 && token.Volume < c.MinVolume {
		return false
	}
	if c.MaxVolume > 0 && token.Volume > c.MaxVolume {
		return false
	}
	if c.MinMarketCap > 0 && token.MarketCap < c.MinMarketCap {
		return false
	}
	if c.MaxMarketCap > 0 && token.MarketCap > c.MaxMarketCap {
		return false
	}
	if c.MinLiquidity > 0 && token.Liquidity < c.MinLiquidity {
		return false
	}
	if c.MaxLiquidity > 0 && token.Liquidity > c.MaxLiquidity {
		return false
	}
	if c.MinHolderCount > 0 && token.HolderCount < c.MinHolderCount {
		return false
	}
	if c.MinPriceChange > 0 && token.PriceChangePercent < c.MinPriceChange {
		return false
	}
	if c.MaxPriceChange > 0 && token.PriceChangePercent > c.MaxPriceChange {
		return false
	}
	if c.MinAgeDays > 0 || c.MaxAgeDays > 0 {
		// Tokens with an unknown creation time fail any age bound; a zero
		// epoch would otherwise satisfy every MinAgeDays.
		if !token.HasAge() {
			return false
		}
		age := token.AgeDays(now)
		if c.MinAgeDays > 0 && age < c.MinAgeDays {
			return false
		}
		if c.MaxAgeDays > 0 && age > c.MaxAgeDays {
			return false
		}
	}
	return true
}

// TokenFilter narrows a token sequence. Implementations must preserve the
// input order and pass empty input through unchanged.
type TokenFilter interface {
	Apply(tokens []Token) []Token
}

// CriteriaFilter keeps tokens matching a FilterCriteria. Order-preserving.
type CriteriaFilter struct {
	Criteria FilterCriteria
}

func NewCriteriaFilter(criteria FilterCriteria) *CriteriaFilter {
	return &CriteriaFilter{Criteria: criteria}
}

func (f *CriteriaFilter) Apply(tokens []Token) []Token {
	now := time.Now()
	result := make([]Token, 0, len(tokens))
	for _, token := range tokens {
		if f.Criteria.matchesAt(token, now) {
			result = append(result, token)
		}
	}
	return result
}

// TopNFilter truncates to the first N elements of the input order. It never
// sorts; callers request a pre-sorted series via QueryParameters.
type TopNFilter struct {
	N int
}

func NewTopNFilter(n int) *TopNFilter {
	return &TopNFilter{N: n}
}

func (f *TopNFilter) Apply(tokens []Token) []Token {
	if f.N <= 0 {
		return []Token{}
	}
	if len(tokens) <= f.N {
		return tokens
	}
	return tokens[:f.N]
}

// CompositeFilter applies its stages left to right, each consuming the
// previous stage's output.
type CompositeFilter struct {
	filters []TokenFilter
}

func NewCompositeFilter(filters ...TokenFilter) *CompositeFilter {
	return &CompositeFilter{filters: filters}
}

func (f *CompositeFilter) Apply(tokens []Token) []Token {
	result := tokens
	for _, stage := range f.filters {
		result = stage.Apply(result)
	}
	return result
}
