package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/usage-stats/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag of cmd to its default so commands can be
// executed repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	for _, c := range rootCmd.Commands() {
		resetFlags(c)
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// clearUsageEnv blanks every USAGE_* variable a local .env may have set and
// keeps logging quiet.
func clearUsageEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvPeriod, config.EnvFormat, config.EnvRating, config.EnvFallbacks,
		config.EnvOutput, config.EnvBaseURL, config.EnvTimeout, config.EnvLimit,
		config.EnvLogFile,
	} {
		t.Setenv(key, "")
	}
	t.Setenv(config.EnvLogLevel, "ERROR")
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

const statsIndex = `<html><body><pre><a href="../">../</a>
<a href="2025-03/">2025-03/</a>
<a href="2025-04/">2025-04/</a>
</pre></body></html>`

const periodIndex = `<html><body><pre><a href="../">../</a>
<a href="moveset/">moveset/</a>
<a href="gen9ou-0.txt">gen9ou-0.txt</a>
<a href="gen9ou-1500.txt">gen9ou-1500.txt</a>
<a href="gen9ubers-0.txt">gen9ubers-0.txt</a>
</pre></body></html>`

// statsServer serves the directory indexes and report fixtures under the
// stats server's URL layout.
func statsServer(t *testing.T) *httptest.Server {
	t.Helper()
	routes := map[string]string{
		"/":                                statsIndex,
		"/2025-04/":                        periodIndex,
		"/2025-04/gen9ou-0.txt":            readFixture(t, "ranking.txt"),
		"/2025-04/moveset/gen9ou-0.txt":    readFixture(t, "gen9ou-0.txt"),
		"/2025-04/moveset/gen9ubers-0.txt": readFixture(t, "gen9ubers-0.txt"),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}
