// Package main provides the entry point for the usage statistics generator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "usage_stats",
	Short: "Usage statistics generator",
	Long: `usage_stats turns the monthly ranking and moveset text reports published by the
stats server into a single JSON array of usage records, filling moveset gaps from
an ordered list of fallback formats.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	rootLogLevel string
	rootLogFile  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level: DEBUG, INFO, WARN or ERROR (defaults to USAGE_LOG_LEVEL or INFO)")
	rootCmd.PersistentFlags().StringVar(&rootLogFile, "log-file", "", "Also write JSON logs to this file (defaults to USAGE_LOG_FILE)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
