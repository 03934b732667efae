// ====================================
// File: cmd/screener/main.go
// ====================================
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/gmgn-screener/gmgn"
	"github.com/rovshanmuradov/gmgn-screener/internal/config"
	"github.com/rovshanmuradov/gmgn-screener/internal/utils/logger"
	"github.com/rovshanmuradov/gmgn-screener/rugcheck"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00E5FF"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2AFFAA"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB500"))
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7280"))
)

func main() {
	configPath := flag.String("config", "configs/config.json", "path to config file")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		LogFile:     cfg.LogFile,
		MaxSize:     100,
		MaxAge:      7,
		MaxBackups:  3,
		Compress:    true,
		Development: cfg.Verbose,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting token screener", zap.String("chain", cfg.Chain))

	api := gmgn.New(cfg.Settings(), log.Logger)
	chain := gmgn.Chain(cfg.Chain)

	if err := run(ctx, api, chain); err != nil {
		log.LogError("Screener run failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, api *gmgn.API, chain gmgn.Chain) error {
	// 1. Top volume tokens
	fmt.Println(headerStyle.Render("Top 5 tokens by 24h volume"))
	volumeTokens, err := api.GetTopVolumeTokens(ctx, chain, gmgn.PeriodDay, 5)
	if err != nil {
		return err
	}
	printTokens(volumeTokens, gmgn.VolumeFormatter{})

	// 2. Top gainers above $100k volume
	fmt.Println(headerStyle.Render("Top gainers with volume above $100k"))
	gainers, err := api.GetFilteredTokens(ctx,
		gmgn.NewGainersQuery(chain, gmgn.PeriodOneHour),
		gmgn.FilterCriteria{MinVolume: 100_000, ExcludeHoneypots: true}, 3)
	if err != nil {
		return err
	}
	printTokens(gainers, gmgn.GainersFormatter{})

	// 3. High-value tokens
	fmt.Println(headerStyle.Render("High-value tokens (vol > $1M, MC > $5M)"))
	highValue, err := api.GetHighValueTokens(ctx, chain, 1_000_000, 5_000_000, 3)
	if err != nil {
		return err
	}
	printTokens(highValue, gmgn.MarketCapFormatter{})

	// 4. Server-side safe tokens
	fmt.Println(headerStyle.Render("Safe tokens (verified, renounced, no honeypots)"))
	safe, err := api.GetSafeTokens(ctx, chain, gmgn.SortVolume, 3)
	if err != nil {
		return err
	}
	printTokens(safe, gmgn.GeneralFormatter{})

	// 5. Small caps
	fmt.Println(headerStyle.Render("Small-cap tokens (MC < $200K, Vol < $300K)"))
	smallCaps, err := api.GetSmallCapTokens(ctx, chain, gmgn.SortVolume, 3)
	if err != nil {
		return err
	}
	printTokens(smallCaps, gmgn.SmallCapFormatter{})

	// 6. Rugcheck-annotated view; per-token failures render as excluded.
	if chain == gmgn.ChainSolana {
		fmt.Println(headerStyle.Render("Rugcheck verification (risk score <= 0.3)"))
		verified, err := api.GetRugcheckVerifiedTokens(ctx, chain, gmgn.SortVolume, 3, 0.3)
		if err != nil {
			return err
		}
		formatter := gmgn.RugcheckFormatter{}
		for i, token := range verified {
			result, err := api.CheckTokenRugRisk(ctx, token.Address, chain)
			if err != nil {
				result = nil
			}
			line := formatter.FormatWithRisk(token, result, i+1)
			fmt.Println(riskStyle(result).Render(line))
		}
		if len(verified) == 0 {
			fmt.Println(mutedStyle.Render("  no tokens passed verification"))
		}
	}

	return nil
}

func printTokens(tokens []gmgn.Token, formatter gmgn.TokenFormatter) {
	if len(tokens) == 0 {
		fmt.Println(mutedStyle.Render("  no tokens matched"))
		return
	}
	for i, token := range tokens {
		fmt.Println(formatter.Format(token, i+1))
	}
}

func riskStyle(result *rugcheck.RiskResult) lipgloss.Style {
	if result == nil {
		return highStyle
	}
	switch gmgn.BandRiskScore(result.RiskScore) {
	case gmgn.RiskLow:
		return lowStyle
	case gmgn.RiskMedium:
		return mediumStyle
	default:
		return highStyle
	}
}
