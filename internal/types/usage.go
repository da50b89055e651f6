// Package types provides type definitions for the usage and moveset records produced by the generator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// RankingEntry is one row of the ranking table
type RankingEntry struct {
	Rank  int     `json:"rank"`
	Name  string  `json:"name"`
	Key   string  `json:"safe_name"`
	Usage float64 `json:"usage"` // Rounded to one decimal place
}

// EntityInfo is the moveset breakdown extracted for one entity
type EntityInfo struct {
	Moves     map[string]float64 `json:"moves"`
	Abilities []string           `json:"ability"`
	Item      *string            `json:"item"`
	Spread    *string            `json:"spread"`
}

// NewEntityInfo returns an EntityInfo with empty, non-nil collections.
func NewEntityInfo() EntityInfo {
	return EntityInfo{
		Moves:     map[string]float64{},
		Abilities: []string{},
	}
}

// HasMoves reports whether at least one move survived filtering.
func (e EntityInfo) HasMoves() bool {
	return len(e.Moves) > 0
}

// TopMove returns the move with the highest usage, ties broken by name.
// Returns an empty string when there are no moves.
func (e EntityInfo) TopMove() string {
	names := make([]string, 0, len(e.Moves))
	for name := range e.Moves {
		names = append(names, name)
	}
	sort.Strings(names)

	top := ""
	best := -1.0
	for _, name := range names {
		if pct := e.Moves[name]; pct > best {
			top, best = name, pct
		}
	}
	return top
}

// MergedRecord is a single element of the generated JSON array.
// Field order matches the serialized output.
type MergedRecord struct {
	Rank      *int               `json:"rank"`
	Name      string             `json:"name"`
	Key       string             `json:"safe_name"`
	Usage     float64            `json:"usage"`
	Abilities []string           `json:"ability"`
	Item      *string            `json:"item"`
	Moves     map[string]float64 `json:"moves"`
	Spread    *string            `json:"spread"`
}

// Info returns the EntityInfo portion of the record.
func (r MergedRecord) Info() EntityInfo {
	return EntityInfo{
		Moves:     r.Moves,
		Abilities: r.Abilities,
		Item:      r.Item,
		Spread:    r.Spread,
	}
}

// MarshalJSON writes usage and move percentages with at least one decimal
// place, so 80 is written as 80.0.
func (r MergedRecord) MarshalJSON() ([]byte, error) {
	var moves map[string]json.Number
	if r.Moves != nil {
		moves = make(map[string]json.Number, len(r.Moves))
		for name, pct := range r.Moves {
			moves[name] = percentNumber(pct)
		}
	}

	out := struct {
		Rank      *int                   `json:"rank"`
		Name      string                 `json:"name"`
		Key       string                 `json:"safe_name"`
		Usage     json.Number            `json:"usage"`
		Abilities []string               `json:"ability"`
		Item      *string                `json:"item"`
		Moves     map[string]json.Number `json:"moves"`
		Spread    *string                `json:"spread"`
	}{
		Rank:      r.Rank,
		Name:      r.Name,
		Key:       r.Key,
		Usage:     percentNumber(r.Usage),
		Abilities: r.Abilities,
		Item:      r.Item,
		Moves:     moves,
		Spread:    r.Spread,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func percentNumber(v float64) json.Number {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return json.Number(s)
}
