package main

import (
	"context"
	"fmt"

	"github.com/jonathan/usage-stats/internal/config"
	"github.com/jonathan/usage-stats/internal/fetch"
	"github.com/jonathan/usage-stats/internal/observability"
	"github.com/jonathan/usage-stats/internal/pipeline"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fetch ranking and moveset reports and write the merged usage JSON",
	Long: `Fetches the ranking table of the primary format and the moveset reports of the
primary format and every fallback, then writes one JSON array of usage records.

Values are resolved in this order: command-line flags, USAGE_* environment
variables, the --config file (JSON or YAML), then built-in defaults.`,
	RunE: runGenerate,
}

var (
	generateConfigPath string
	generatePeriod     string
	generateFormat     string
	generateRating     int
	generateFallbacks  []string
	generateOutput     string
	generateLimit      int
	generateBaseURL    string
	generateTimeout    int
	generateVerbose    bool
)

func init() {
	// Config file flag (processed first)
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by other flags)")

	generateCmd.Flags().StringVarP(&generatePeriod, "period", "p", "", "Report period, e.g. 2025-04")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "Primary format, e.g. gen9ou")
	generateCmd.Flags().IntVarP(&generateRating, "rating", "r", 0, "Rating cutoff of the reports, e.g. 0 or 1500")
	generateCmd.Flags().StringSliceVar(&generateFallbacks, "fallback", nil, "Fallback format as format or format:rating (repeatable, in priority order)")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Path to output JSON file")
	generateCmd.Flags().IntVar(&generateLimit, "limit", 0, "Read at most this many ranking rows (0 reads all)")
	generateCmd.Flags().StringVar(&generateBaseURL, "base-url", "", "Root URL of the stats server")
	generateCmd.Flags().IntVar(&generateTimeout, "timeout", 0, "HTTP timeout in seconds")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print step progress and summaries")

	rootCmd.AddCommand(generateCmd)
}

// resolveGenerateConfig layers flags over the environment, the config file and the defaults.
func resolveGenerateConfig(cmd *cobra.Command) (config.Config, error) {
	var fileCfg config.Config
	if generateConfigPath != "" {
		loaded, err := config.LoadConfig(generateConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg = *loaded
	}

	envCfg := config.FromEnv()
	cfg := envCfg.MergeWithDefaults(fileCfg)
	cfg.Verbose = fileCfg.Verbose

	// Apply CLI overrides; only flags that were explicitly set
	if cmd.Flags().Changed("period") {
		cfg.Period = generatePeriod
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = generateFormat
	}
	if cmd.Flags().Changed("rating") {
		cfg.Rating = generateRating
	}
	if cmd.Flags().Changed("fallback") {
		cfg.Fallbacks = generateFallbacks
	}
	if cmd.Flags().Changed("out") {
		cfg.Output = generateOutput
	}
	if cmd.Flags().Changed("limit") {
		cfg.Limit = generateLimit
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = generateBaseURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = generateTimeout
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = generateVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Default())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveGenerateConfig(cmd)
	if err != nil {
		return err
	}

	reports, err := cfg.Reports()
	if err != nil {
		return err
	}

	logger, closeLog := newLogger(cmd, cfg)
	defer func() { _ = closeLog() }()

	out := cmd.OutOrStdout()
	opts := pipeline.Options{
		Reports: reports,
		BaseURL: cfg.BaseURL,
		Output:  cfg.Output,
		Limit:   cfg.Limit,
		Fetcher: fetch.NewCachedFetcher(&fetch.CachedFetcherConfig{Options: fetchOptions(cfg.TimeoutSeconds)}),
		Logger:  logger,
	}
	if cfg.Verbose {
		opts.OnProgress = stepPrinter(out)
	}

	ctx := context.Background()
	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(out)
		printer.PrintAudits(result.Audits)
		printer.PrintMergeReport(result.Report, result.Sources)
		printer.PrintTopRecords(result.Records)
	}

	_, _ = fmt.Fprintf(out, "Wrote %d records to %s\n", len(result.Records), result.Output)
	return nil
}
