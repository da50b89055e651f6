// Package merge joins ranking entries with moveset data drawn from an
// ordered list of fallback sources.
package merge

import (
	"sort"

	"github.com/jonathan/usage-stats/internal/parsing"
	"github.com/jonathan/usage-stats/internal/types"
)

// Source is one parsed moveset report. Sources are consulted in slice order,
// so the first source has the highest priority.
type Source struct {
	Name  string
	Infos map[string]types.EntityInfo
}

// Report summarizes a merge.
type Report struct {
	Ranked     int            // Records emitted from the ranking table
	Dropped    int            // Ranking entries with no move data in any source
	Appended   int            // Unranked records taken from the last source
	SourceHits map[string]int // Records served by each source, by name
}

// Lookup returns the EntityInfo for key from the first source whose entry has
// at least one move, along with that source's name.
func Lookup(sources []Source, key string) (types.EntityInfo, string, bool) {
	for _, src := range sources {
		if info, ok := src.Infos[key]; ok && info.HasMoves() {
			return info, src.Name, true
		}
	}
	return types.EntityInfo{}, "", false
}

// Merge combines ranking entries with the sources. See MergeWithReport.
func Merge(ranking []types.RankingEntry, sources []Source) []types.MergedRecord {
	records, _ := MergeWithReport(ranking, sources)
	return records
}

// MergeWithReport emits one record per ranking entry that has move data in some
// source, renumbering ranks from 1 in ranking order. It then appends unranked
// records for every key of the last source that was not already emitted, in
// ascending key order.
func MergeWithReport(ranking []types.RankingEntry, sources []Source) ([]types.MergedRecord, Report) {
	report := Report{SourceHits: make(map[string]int, len(sources))}
	records := []types.MergedRecord{}
	if len(sources) == 0 {
		report.Dropped = len(ranking)
		return records, report
	}

	emitted := make(map[string]bool, len(ranking))
	for _, entry := range ranking {
		info, from, ok := Lookup(sources, entry.Key)
		if !ok {
			report.Dropped++
			continue
		}

		rank := len(records) + 1
		records = append(records, newRecord(&rank, entry.Name, entry.Key, parsing.RoundUsage(entry.Usage), info))
		emitted[entry.Key] = true
		report.Ranked++
		report.SourceHits[from]++
	}

	last := sources[len(sources)-1]
	keys := make([]string, 0, len(last.Infos))
	for key := range last.Infos {
		if !emitted[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		info, from, ok := Lookup(sources, key)
		if !ok {
			continue
		}
		records = append(records, newRecord(nil, parsing.TitleCaseKey(key), key, 0.0, info))
		report.Appended++
		report.SourceHits[from]++
	}

	return records, report
}

func newRecord(rank *int, name, key string, usage float64, info types.EntityInfo) types.MergedRecord {
	abilities := info.Abilities
	if abilities == nil {
		abilities = []string{}
	}
	moves := info.Moves
	if moves == nil {
		moves = map[string]float64{}
	}

	return types.MergedRecord{
		Rank:      rank,
		Name:      name,
		Key:       key,
		Usage:     usage,
		Abilities: abilities,
		Item:      info.Item,
		Moves:     moves,
		Spread:    info.Spread,
	}
}
