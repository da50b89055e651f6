package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/usage-stats/internal/fetch"
	"github.com/jonathan/usage-stats/internal/observability"
	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the formats and rating cutoffs published for a period",
	Long: `Lists every report published for a period as format-rating, e.g. gen9ou-1500.
Use --contains to filter by a substring of the format.`,
	RunE: runFormats,
}

var (
	formatsPeriod   string
	formatsContains string
	formatsBaseURL  string
	formatsTimeout  int
	formatsVerbose  bool
)

func init() {
	formatsCmd.Flags().StringVarP(&formatsPeriod, "period", "p", "", "Report period, e.g. 2025-04 (required)")
	formatsCmd.Flags().StringVar(&formatsContains, "contains", "", "Only list formats containing this text")
	formatsCmd.Flags().StringVar(&formatsBaseURL, "base-url", "", "Root URL of the stats server")
	formatsCmd.Flags().IntVar(&formatsTimeout, "timeout", 0, "HTTP timeout in seconds")
	formatsCmd.Flags().BoolVarP(&formatsVerbose, "verbose", "v", false, "Print the list in a box")

	_ = formatsCmd.MarkFlagRequired("period")

	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, _ []string) error {
	baseURL := resolveBaseURL(cmd, formatsBaseURL)

	reports, err := fetch.ListReports(context.Background(), baseURL, formatsPeriod, fetchOptions(formatsTimeout))
	if err != nil {
		return fmt.Errorf("failed to list formats for %s: %w", formatsPeriod, err)
	}

	names := make([]string, 0, len(reports))
	for _, r := range reports {
		if formatsContains != "" && !strings.Contains(r.Format, formatsContains) {
			continue
		}
		names = append(names, r.Name())
	}

	out := cmd.OutOrStdout()
	if formatsVerbose {
		observability.NewPrinter(out).PrintList("FORMATS", names)
		return nil
	}
	for _, name := range names {
		_, _ = fmt.Fprintln(out, name)
	}
	return nil
}
