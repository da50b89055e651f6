package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportURLs(t *testing.T) {
	id := ReportID{Period: "2025-04", Format: "gen9ou", Rating: 1500}

	assert.Equal(t, "gen9ou-1500", id.Name())
	assert.Equal(t, "https://www.smogon.com/stats/2025-04/gen9ou-1500.txt", RankingURL(DefaultBaseURL, id))
	assert.Equal(t, "https://www.smogon.com/stats/2025-04/moveset/gen9ou-1500.txt", MovesetURL(DefaultBaseURL, id))
	assert.Equal(t, "http://localhost/2025-04/gen9ou-1500.txt", RankingURL("http://localhost/", id))
}

func TestParseReportFile(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   ReportID
		wantOK bool
	}{
		{"simple", "gen9ou-0.txt", ReportID{Format: "gen9ou", Rating: 0}, true},
		{"high rating", "gen9bssregi-1760.txt", ReportID{Format: "gen9bssregi", Rating: 1760}, true},
		{"hyphenated format", "gen9vgc2025-regi-1500.txt", ReportID{Format: "gen9vgc2025-regi", Rating: 1500}, true},
		{"not txt", "gen9ou-0.json", ReportID{}, false},
		{"no rating", "gen9ou.txt", ReportID{}, false},
		{"bad rating", "gen9ou-abc.txt", ReportID{}, false},
		{"directory", "moveset/", ReportID{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseReportFile(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
