// =================================
// File: rugcheck/score.go
// =================================
package rugcheck

// ScoreNormalizer maps an upstream report to a 0..1 risk score. The upstream
// scale is not formally documented, so the mapping is pluggable; swap the
// client's Normalizer once the real bounds are confirmed.
type ScoreNormalizer func(report *Report) float64

// maxRiskFindings caps the fallback risk estimate: ten findings saturate
// the score at 1.0.
const maxRiskFindings = 10

// DefaultNormalizer inverts the upstream safety score into a risk score.
//
// Preference order: score_normalised (0..1, higher = safer), then the raw
// score assumed on a 0..100 scale, then the rugged flag, then the number of
// risk findings. With no signal at all the token is treated as medium risk.
func DefaultNormalizer(report *Report) float64 {
	switch {
	case report.ScoreNormalised != nil:
		return clamp01(1.0 - *report.ScoreNormalised)
	case report.Score != 0:
		return clamp01(1.0 - report.Score/100.0)
	case report.Rugged:
		return 1.0
	case len(report.Risks) > 0:
		return clamp01(float64(len(report.Risks)) / maxRiskFindings)
	default:
		return 0.5
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
