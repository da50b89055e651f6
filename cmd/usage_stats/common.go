package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jonathan/usage-stats/internal/config"
	"github.com/jonathan/usage-stats/internal/fetch"
	"github.com/jonathan/usage-stats/internal/pipeline"
	"github.com/spf13/cobra"
)

// newLogger builds the run logger from the persistent flags, falling back to
// cfg and then the environment.
func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, func() error) {
	level := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = rootLogLevel
	}
	if level == "" {
		level = config.FromEnv().LogLevel
	}

	logFile := cfg.LogFile
	if cmd.Flags().Changed("log-file") {
		logFile = rootLogFile
	}
	if logFile == "" {
		logFile = config.FromEnv().LogFile
	}

	return config.SetupLogger(logFile, config.ParseLogLevel(level))
}

// resolveBaseURL picks the flag value when set, then USAGE_BASE_URL, then the default.
func resolveBaseURL(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed("base-url") && flagValue != "" {
		return flagValue
	}
	if env := config.FromEnv().BaseURL; env != "" {
		return env
	}
	return fetch.DefaultBaseURL
}

// fetchOptions returns fetch options with the given timeout in seconds.
func fetchOptions(timeoutSeconds int) *fetch.Options {
	cfg := config.Config{TimeoutSeconds: timeoutSeconds}
	opts := fetch.DefaultOptions()
	opts.Timeout = cfg.Timeout()
	return opts
}

// stepPrinter returns a progress callback that prints each step with its position.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func stepPrinter(out io.Writer) pipeline.ProgressCallback {
	return func(e pipeline.ProgressEvent) {
		fmt.Fprintf(out, "Step %d/%d: %s...\n", e.Index, e.Total, e.Message)
	}
}
