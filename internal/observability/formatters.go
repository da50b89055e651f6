// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/usage-stats/internal/merge"
	"github.com/jonathan/usage-stats/internal/parsing"
	"github.com/jonathan/usage-stats/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintMergeReport outputs how many records came from the ranking table and
// from each source.
func (p *Printer) PrintMergeReport(report merge.Report, sourceOrder []string) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Ranked:   %d\n", report.Ranked))
	sb.WriteString(fmt.Sprintf("Dropped:  %d (no moves in any source)\n", report.Dropped))
	sb.WriteString(fmt.Sprintf("Appended: %d (unranked)\n", report.Appended))

	if len(sourceOrder) > 0 {
		sb.WriteString("\nServed by source:\n")
		for i, name := range sourceOrder {
			sb.WriteString(fmt.Sprintf("  %d. %-30s %d\n", i+1, name, report.SourceHits[name]))
		}
	}

	p.printBox("MERGE SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTopRecords outputs the first records with usage and most used move.
func (p *Printer) PrintTopRecords(records []types.MergedRecord) {
	if len(records) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total records: %d\n\n", len(records)))

	count := min(len(records), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := records[i]
		rank := "-"
		if rec.Rank != nil {
			rank = fmt.Sprintf("%d", *rec.Rank)
		}
		sb.WriteString(fmt.Sprintf("#%s  %s  %.1f%%\n", rank, rec.Name, rec.Usage))
		if top := rec.Info().TopMove(); top != "" {
			sb.WriteString(fmt.Sprintf("    Top move: %s (%.1f%%)\n", top, rec.Moves[top]))
		}
		if rec.Item != nil {
			sb.WriteString(fmt.Sprintf("    Item: %s\n", *rec.Item))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(records) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more records", len(records)-maxItemsToShow))
	}

	p.printBox("TOP RECORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAudits outputs per-document line counts. Documents without discards
// are listed with their kept count only.
func (p *Printer) PrintAudits(audits []*parsing.Audit) {
	if len(audits) == 0 {
		return
	}

	var sb strings.Builder
	for i, audit := range audits {
		if audit == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s\n", audit.Document))
		sb.WriteString(fmt.Sprintf("  kept %d, discarded %d", audit.Kept, audit.TotalDiscarded()))
		if n := audit.Malformed(); n > 0 {
			sb.WriteString(fmt.Sprintf(" (%d malformed)", n))
		}
		sb.WriteString("\n")

		reasons := audit.Reasons()
		sort.SliceStable(reasons, func(a, b int) bool {
			return audit.Count(reasons[a]) > audit.Count(reasons[b])
		})
		for _, reason := range reasons {
			sb.WriteString(fmt.Sprintf("    %-16s %d\n", reason, audit.Count(reason)))
		}
		if i < len(audits)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PARSE AUDIT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintList outputs a titled list such as available periods or formats.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintList(title string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO "+title+" FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("• %s", item))
		if i < len(items)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(title, sb.String())
}
