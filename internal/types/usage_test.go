package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityInfo_TopMove(t *testing.T) {
	info := NewEntityInfo()
	assert.Equal(t, "", info.TopMove())
	assert.False(t, info.HasMoves())

	info.Moves["Thunderbolt"] = 80.0
	info.Moves["Volt Switch"] = 95.5
	info.Moves["Surf"] = 95.5
	assert.True(t, info.HasMoves())
	assert.Equal(t, "Surf", info.TopMove(), "ties should resolve alphabetically")
}

func TestMergedRecord_JSONFieldOrder(t *testing.T) {
	rank := 1
	rec := MergedRecord{
		Rank:      &rank,
		Name:      "Pikachu",
		Key:       "pikachu",
		Usage:     25.5,
		Abilities: []string{"Static"},
		Moves:     map[string]float64{"Thunderbolt": 80},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t,
		`{"rank":1,"name":"Pikachu","safe_name":"pikachu","usage":25.5,"ability":["Static"],"item":null,"moves":{"Thunderbolt":80.0},"spread":null}`,
		string(data), "fields should serialize in declaration order")
}

func TestMergedRecord_UnrankedSerializesNull(t *testing.T) {
	rec := MergedRecord{Name: "Iron Valiant", Key: "iron-valiant", Abilities: []string{}, Moves: map[string]float64{}}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rank":null`)
	assert.Contains(t, string(data), `"ability":[]`)
}
