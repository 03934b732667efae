package rugcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestDefaultNormalizerPrefersNormalisedScore(t *testing.T) {
	cases := []struct {
		name   string
		report Report
		want   float64
	}{
		{"fully safe", Report{ScoreNormalised: floatPtr(1.0)}, 0.0},
		{"fully risky", Report{ScoreNormalised: floatPtr(0.0)}, 1.0},
		{"mid safety", Report{ScoreNormalised: floatPtr(0.7)}, 0.3},
		// Normalised wins over every other signal, even the rugged flag.
		{"normalised wins", Report{ScoreNormalised: floatPtr(0.9), Score: 10, Rugged: true}, 0.1},
		// Out-of-range upstream values are clamped.
		{"clamped above", Report{ScoreNormalised: floatPtr(-0.5)}, 1.0},
		{"clamped below", Report{ScoreNormalised: floatPtr(1.5)}, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, DefaultNormalizer(&tc.report), 1e-9)
		})
	}
}

func TestDefaultNormalizerRawScoreFallback(t *testing.T) {
	assert.InDelta(t, 0.6, DefaultNormalizer(&Report{Score: 40}), 1e-9)
	assert.InDelta(t, 0.0, DefaultNormalizer(&Report{Score: 100}), 1e-9)
	// Scores above 100 would invert negative; clamp at zero risk.
	assert.InDelta(t, 0.0, DefaultNormalizer(&Report{Score: 3000}), 1e-9)
}

func TestDefaultNormalizerRuggedFlag(t *testing.T) {
	assert.Equal(t, 1.0, DefaultNormalizer(&Report{Rugged: true}))
}

func TestDefaultNormalizerRiskCountFallback(t *testing.T) {
	risks := func(n int) []Risk { return make([]Risk, n) }

	assert.InDelta(t, 0.3, DefaultNormalizer(&Report{Risks: risks(3)}), 1e-9)
	assert.InDelta(t, 1.0, DefaultNormalizer(&Report{Risks: risks(10)}), 1e-9)
	assert.InDelta(t, 1.0, DefaultNormalizer(&Report{Risks: risks(25)}), 1e-9)
}

func TestDefaultNormalizerNoSignal(t *testing.T) {
	assert.Equal(t, 0.5, DefaultNormalizer(&Report{}))
}
