package main

import (
	"context"
	"fmt"

	"github.com/jonathan/usage-stats/internal/fetch"
	"github.com/jonathan/usage-stats/internal/observability"
	"github.com/spf13/cobra"
)

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "List the report periods published by the stats server",
	RunE:  runPeriods,
}

var (
	periodsBaseURL string
	periodsTimeout int
	periodsVerbose bool
)

func init() {
	periodsCmd.Flags().StringVar(&periodsBaseURL, "base-url", "", "Root URL of the stats server")
	periodsCmd.Flags().IntVar(&periodsTimeout, "timeout", 0, "HTTP timeout in seconds")
	periodsCmd.Flags().BoolVarP(&periodsVerbose, "verbose", "v", false, "Print the list in a box")

	rootCmd.AddCommand(periodsCmd)
}

func runPeriods(cmd *cobra.Command, _ []string) error {
	baseURL := resolveBaseURL(cmd, periodsBaseURL)

	periods, err := fetch.ListPeriods(context.Background(), baseURL, fetchOptions(periodsTimeout))
	if err != nil {
		return fmt.Errorf("failed to list periods: %w", err)
	}

	out := cmd.OutOrStdout()
	if periodsVerbose {
		observability.NewPrinter(out).PrintList("PERIODS", periods)
		return nil
	}
	for _, p := range periods {
		_, _ = fmt.Fprintln(out, p)
	}
	return nil
}
