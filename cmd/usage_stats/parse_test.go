package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	clearUsageEnv(t)
	output := filepath.Join(t.TempDir(), "usage.json")

	stdout, err := executeCommand(t, "parse",
		"--ranking", filepath.Join("testdata", "ranking.txt"),
		"--moveset", filepath.Join("testdata", "gen9ou-0.txt"),
		"--moveset", filepath.Join("testdata", "gen9ubers-0.txt"),
		"--out", output,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 3 records")

	records := readRecords(t, output)
	require.Len(t, records, 3)
	assert.Equal(t, "pikachu", records[0]["safe_name"])
	assert.Equal(t, 12.3, records[0]["usage"])
}

func TestParseCommand_SingleSource(t *testing.T) {
	clearUsageEnv(t)
	output := filepath.Join(t.TempDir(), "usage.json")

	_, err := executeCommand(t, "parse",
		"--ranking", filepath.Join("testdata", "ranking.txt"),
		"--moveset", filepath.Join("testdata", "gen9ou-0.txt"),
		"--out", output,
		"--verbose",
	)
	require.NoError(t, err)

	// Raichu has no move above the threshold and Eevee has no data.
	records := readRecords(t, output)
	require.Len(t, records, 1)
	assert.Equal(t, "Pikachu", records[0]["name"])
}

func TestParseCommand_MissingFlags(t *testing.T) {
	clearUsageEnv(t)

	_, err := executeCommand(t, "parse", "--ranking", filepath.Join("testdata", "ranking.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s)")
	assert.Contains(t, err.Error(), "moveset")
}

func TestParseCommand_NegativeLimit(t *testing.T) {
	clearUsageEnv(t)

	_, err := executeCommand(t, "parse",
		"--ranking", filepath.Join("testdata", "ranking.txt"),
		"--moveset", filepath.Join("testdata", "gen9ou-0.txt"),
		"--limit", "-1",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--limit")
}
