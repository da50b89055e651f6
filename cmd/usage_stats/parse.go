package main

import (
	"context"
	"fmt"

	"github.com/jonathan/usage-stats/internal/config"
	"github.com/jonathan/usage-stats/internal/observability"
	"github.com/jonathan/usage-stats/internal/pipeline"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Merge ranking and moveset report files from disk into usage JSON",
	Long: `Parses a ranking report file and one or more moveset report files, given in
priority order, and writes the merged JSON array. No network access is made.`,
	RunE: runParse,
}

var (
	parseRankingFile  string
	parseMovesetFiles []string
	parseOutputFile   string
	parseLimit        int
	parseVerbose      bool
)

func init() {
	parseCmd.Flags().StringVar(&parseRankingFile, "ranking", "", "Path to ranking report text file (required)")
	parseCmd.Flags().StringSliceVar(&parseMovesetFiles, "moveset", nil, "Path to moveset report text file (repeatable, in priority order; required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", config.Default().Output, "Path to output JSON file")
	parseCmd.Flags().IntVar(&parseLimit, "limit", 0, "Read at most this many ranking rows (0 reads all)")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print step progress and summaries")

	_ = parseCmd.MarkFlagRequired("ranking")
	_ = parseCmd.MarkFlagRequired("moveset")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	if parseLimit < 0 {
		return fmt.Errorf("--limit must be non-negative")
	}

	logger, closeLog := newLogger(cmd, config.Config{})
	defer func() { _ = closeLog() }()

	out := cmd.OutOrStdout()
	opts := pipeline.LocalOptions{
		RankingPath:  parseRankingFile,
		MovesetPaths: parseMovesetFiles,
		Output:       parseOutputFile,
		Limit:        parseLimit,
		Logger:       logger,
	}
	if parseVerbose {
		opts.OnProgress = stepPrinter(out)
	}

	result, err := pipeline.RunLocal(context.Background(), opts)
	if err != nil {
		return err
	}

	if parseVerbose {
		printer := observability.NewPrinter(out)
		printer.PrintAudits(result.Audits)
		printer.PrintMergeReport(result.Report, result.Sources)
		printer.PrintTopRecords(result.Records)
	}

	_, _ = fmt.Fprintf(out, "Wrote %d records to %s\n", len(result.Records), result.Output)
	return nil
}
