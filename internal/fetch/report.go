package fetch

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultBaseURL is the root of the published monthly usage statistics.
const DefaultBaseURL = "https://www.smogon.com/stats"

// ReportID identifies one pair of ranking and moveset reports on the stats server.
type ReportID struct {
	Period string // e.g. "2025-04"
	Format string // e.g. "gen9ou"
	Rating int    // Minimum rating cutoff, e.g. 0, 1500, 1695, 1825
}

// Name returns the file stem used by the stats server, e.g. "gen9ou-1500".
func (r ReportID) Name() string {
	return fmt.Sprintf("%s-%d", r.Format, r.Rating)
}

// RankingURL returns the URL of the ranking table for r.
func RankingURL(baseURL string, r ReportID) string {
	return fmt.Sprintf("%s/%s/%s.txt", strings.TrimRight(baseURL, "/"), r.Period, r.Name())
}

// MovesetURL returns the URL of the moveset breakdown for r.
func MovesetURL(baseURL string, r ReportID) string {
	return fmt.Sprintf("%s/%s/moveset/%s.txt", strings.TrimRight(baseURL, "/"), r.Period, r.Name())
}

// ParseReportFile parses a file name such as "gen9ou-1500.txt" into its
// format and rating. The period is left empty.
func ParseReportFile(name string) (ReportID, bool) {
	stem, ok := strings.CutSuffix(name, ".txt")
	if !ok {
		return ReportID{}, false
	}
	idx := strings.LastIndex(stem, "-")
	if idx <= 0 {
		return ReportID{}, false
	}
	rating, err := strconv.Atoi(stem[idx+1:])
	if err != nil || rating < 0 {
		return ReportID{}, false
	}
	return ReportID{Format: stem[:idx], Rating: rating}, true
}
