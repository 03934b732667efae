// =================================
// File: gmgn/format.go
// =================================
package gmgn

import (
	"fmt"
	"strings"

	"github.com/rovshanmuradov/gmgn-screener/rugcheck"
)

// TokenFormatter renders one token as a single display line. Formatters are
// pure: no I/O, no state. Index is 1-based.
type TokenFormatter interface {
	Format(token Token, index int) string
}

// RiskBand buckets a 0..1 risk score into three labeled bands.
type RiskBand string

const (
	RiskLow    RiskBand = "Low Risk"
	RiskMedium RiskBand = "Medium Risk"
	RiskHigh   RiskBand = "High Risk"
)

// BandRiskScore maps a risk score to its band. Boundaries are inclusive:
// 0.2 is still low and 0.5 still medium.
func BandRiskScore(score float64) RiskBand {
	switch {
	case score <= 0.2:
		return RiskLow
	case score <= 0.5:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Tag returns the band's terminal-safe icon tag.
func (b RiskBand) Tag() string {
	switch b {
	case RiskLow:
		return "[+]"
	case RiskMedium:
		return "[!]"
	default:
		return "[x]"
	}
}

// GeneralFormatter shows price, 24h change and volume.
type GeneralFormatter struct{}

func (GeneralFormatter) Format(token Token, index int) string {
	return fmt.Sprintf("  %d. %s - Price: $%.6f | 24h: %.2f%% | Volume: $%s",
		index, token.Symbol, token.Price, token.PriceChangePercent, groupThousands(token.Volume))
}

// VolumeFormatter leads with volume, abbreviated from one million up.
type VolumeFormatter struct{}

func (VolumeFormatter) Format(token Token, index int) string {
	volume := "$" + groupThousands(token.Volume)
	if token.Volume >= 1_000_000 {
		volume = fmt.Sprintf("$%.2fM", token.Volume/1_000_000)
	}
	return fmt.Sprintf("  %d. %s - Volume: %s | Price: $%.6f",
		index, token.Symbol, volume, token.Price)
}

// MarketCapFormatter leads with market capitalization.
type MarketCapFormatter struct{}

func (MarketCapFormatter) Format(token Token, index int) string {
	mcap := "$" + groupThousands(token.MarketCap)
	if token.MarketCap >= 1_000_000 {
		mcap = fmt.Sprintf("$%.2fM", token.MarketCap/1_000_000)
	}
	return fmt.Sprintf("  %d. %s - MC: %s | Price: $%.6f",
		index, token.Symbol, mcap, token.Price)
}

// GainersFormatter shows the short-window price changes.
type GainersFormatter struct{}

func (GainersFormatter) Format(token Token, index int) string {
	return fmt.Sprintf("  %d. %s - 1h: %.2f%% | 24h: %.2f%% | Price: $%.6f",
		index, token.Symbol, token.PriceChangePercent1h, token.PriceChangePercent, token.Price)
}

// SmallCapFormatter shows market cap, liquidity and volume side by side,
// abbreviated from one thousand up.
type SmallCapFormatter struct{}

func (SmallCapFormatter) Format(token Token, index int) string {
	return fmt.Sprintf("  %d. %s - MC: %s | Liq: %s | Vol: %s | Price: $%.6f",
		index, token.Symbol,
		abbreviateMoney(token.MarketCap),
		abbreviateMoney(token.Liquidity),
		abbreviateMoney(token.Volume),
		token.Price)
}

// RugcheckFormatter renders tokens with an optional risk annotation.
type RugcheckFormatter struct{}

func (RugcheckFormatter) Format(token Token, index int) string {
	return fmt.Sprintf("  %d. %s - Price: $%.6f | Vol: $%s",
		index, token.Symbol, token.Price, groupThousands(token.Volume))
}

// FormatWithRisk renders the token together with its risk band. A nil
// result means the check failed for this token.
func (f RugcheckFormatter) FormatWithRisk(token Token, result *rugcheck.RiskResult, index int) string {
	risk := "[?] Check Failed"
	if result != nil {
		band := BandRiskScore(result.RiskScore)
		risk = fmt.Sprintf("%s %s (%.2f)", band.Tag(), band, result.RiskScore)
	}
	return fmt.Sprintf("  %d. %s - %s | Price: $%.6f | Vol: $%s",
		index, token.Symbol, risk, token.Price, groupThousands(token.Volume))
}

// abbreviateMoney renders $X.XXM above a million, $XK above a thousand and
// plain dollars below that.
func abbreviateMoney(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.2fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// groupThousands formats a value rounded to whole dollars with comma
// grouping, e.g. 1234567.8 -> "1,234,568".
func groupThousands(v float64) string {
	s := fmt.Sprintf("%.0f", v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
