package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitalscope/vitalscope/internal/audit"
	"github.com/vitalscope/vitalscope/pkg/suggest"
	"github.com/vitalscope/vitalscope/pkg/surface"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		strategy   string
		endpoint   string
		apiKey     string
		configPath string
		outputFmt  string
	)

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Audit a URL and store the result",
		Long:  `Runs a performance audit, scores the Core Web Vitals, stores the entry in local history, and renders a scorecard.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), analyzeOpts{
				url:        args[0],
				strategy:   strategy,
				endpoint:   endpoint,
				apiKey:     apiKey,
				configPath: configPath,
				outputFmt:  outputFmt,
			})
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "Device strategy: mobile or desktop")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Audit service endpoint (default: public PageSpeed Insights)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Audit service API key")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: nearest .vitalscope/config.yaml)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

type analyzeOpts struct {
	url        string
	strategy   string
	endpoint   string
	apiKey     string
	configPath string
	outputFmt  string
}

func runAnalyze(ctx context.Context, opts analyzeOpts) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	strategy := audit.Strategy(firstNonEmpty(opts.strategy, cfg.Audit.Strategy, string(audit.StrategyMobile)))
	if strategy != audit.StrategyMobile && strategy != audit.StrategyDesktop {
		return fmt.Errorf("strategy must be mobile or desktop, got %q", strategy)
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	client := audit.NewClient(
		firstNonEmpty(opts.endpoint, cfg.Audit.Endpoint),
		firstNonEmpty(opts.apiKey, cfg.Audit.APIKey),
	)

	fmt.Fprintf(os.Stderr, "Auditing %s (%s)...\n", opts.url, strategy)
	draft, err := client.Analyze(ctx, opts.url, strategy)
	if err != nil {
		return fmt.Errorf("auditing %s: %w", opts.url, err)
	}

	entry := st.AddEntry(ctx, *draft)
	st.AddHistoricalPoint(ctx, entry.Rollup())

	tips := suggest.ForEntry(entry)

	if opts.outputFmt == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"entry":       entry,
			"suggestions": tips,
		})
	}

	renderer := &surface.TerminalRenderer{}
	return renderer.Render(os.Stdout, entry, tips)
}
