package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/usage-stats/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func TestMarshal_Empty(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestMarshal_Indent(t *testing.T) {
	records := []types.MergedRecord{{
		Rank:      intPtr(1),
		Name:      "Pikachu",
		Key:       "pikachu",
		Usage:     12.3,
		Abilities: []string{"Static"},
		Item:      strPtr("Light Ball"),
		Moves:     map[string]float64{"Thunderbolt": 90},
		Spread:    nil,
	}}

	data, err := Marshal(records)
	require.NoError(t, err)

	expected := `[
  {
    "rank": 1,
    "name": "Pikachu",
    "safe_name": "pikachu",
    "usage": 12.3,
    "ability": [
      "Static"
    ],
    "item": "Light Ball",
    "moves": {
      "Thunderbolt": 90.0
    },
    "spread": null
  }
]
`
	assert.Equal(t, expected, string(data))
}

func TestMarshal_WholePercentagesKeepDecimal(t *testing.T) {
	records := []types.MergedRecord{{
		Name:      "Ditto",
		Key:       "ditto",
		Usage:     0,
		Abilities: []string{},
		Moves:     map[string]float64{"Transform": 100, "Tackle": 15.001},
	}}

	data, err := Marshal(records)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"usage": 0.0,`)
	assert.Contains(t, string(data), `"Transform": 100.0`)
	assert.Contains(t, string(data), `"Tackle": 15.001`)
}

func TestWriteJSON_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "data", "usage.json")
	records := []types.MergedRecord{{
		Name:      "Ditto",
		Key:       "ditto",
		Abilities: []string{},
		Moves:     map[string]float64{"Transform": 100},
	}}

	require.NoError(t, WriteJSON(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Nil(t, decoded[0]["rank"])
	assert.Equal(t, "ditto", decoded[0]["safe_name"])
	assert.Equal(t, []interface{}{}, decoded[0]["ability"])
}

func TestWriteJSON_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, WriteJSON(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteJSON_BadDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := WriteJSON(filepath.Join(blocker, "usage.json"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output directory")
}
