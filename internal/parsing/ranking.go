package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/usage-stats/internal/types"
)

// rankHeaderPrefix marks the column header line of the ranking table
const rankHeaderPrefix = "| Rank"

// tableRuleRegex matches the "+ ---- + ---- +" lines that frame the table.
var tableRuleRegex = regexp.MustCompile(`^\s*\+[\s+-]*\+\s*$`)

// ParseRanking parses every row of the ranking table.
func ParseRanking(text string, audit *Audit) ([]types.RankingEntry, error) {
	return ParseRankingLimit(text, 0, audit)
}

// ParseRankingLimit parses the ranking table, stopping after limit accepted rows.
// A limit of zero or less means no limit. It returns a *ParseError when the
// header line is missing; malformed rows are skipped.
func ParseRankingLimit(text string, limit int, audit *Audit) ([]types.RankingEntry, error) {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), rankHeaderPrefix) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, &ParseError{
			Document: documentName(audit, "ranking report"),
			Message:  "could not find the start of ranking data",
			Cause:    ErrMissingHeader,
		}
	}

	entries := []types.RankingEntry{}
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			break
		}
		if limit > 0 && len(entries) >= limit {
			break
		}

		if tableRuleRegex.MatchString(line) {
			audit.discard(ReasonRule, line)
			continue
		}

		entry, reason, ok := parseRankingRow(line)
		if !ok {
			audit.discard(reason, line)
			continue
		}
		entries = append(entries, entry)
		audit.keep()
	}

	return entries, nil
}

// parseRankingRow parses "| rank | name | usage% | ..." into an entry.
func parseRankingRow(line string) (types.RankingEntry, Reason, bool) {
	columns := strings.Split(line, "|")
	if len(columns) < 4 {
		return types.RankingEntry{}, ReasonShortRow, false
	}

	rank, err := strconv.Atoi(strings.TrimSpace(columns[1]))
	if err != nil {
		return types.RankingEntry{}, ReasonBadRank, false
	}

	name := strings.TrimSpace(columns[2])
	if name == "" {
		return types.RankingEntry{}, ReasonNoName, false
	}

	usage, err := parsePercent(strings.ReplaceAll(columns[3], "%", ""))
	if err != nil || usage < 0 || usage > 100 {
		return types.RankingEntry{}, ReasonBadUsage, false
	}

	return types.RankingEntry{
		Rank:  rank,
		Name:  name,
		Key:   NormalizeName(name),
		Usage: RoundUsage(usage),
	}, "", true
}

// RoundUsage rounds a percentage to one decimal place, halves to even.
func RoundUsage(usage float64) float64 {
	return math.RoundToEven(usage*10) / 10
}

func documentName(audit *Audit, fallback string) string {
	if audit == nil || audit.Document == "" {
		return fallback
	}
	return audit.Document
}
