package parsing

import "strings"

// SectionKind tags a raw section by the label on its first line.
type SectionKind int

const (
	// SectionUnknown is any section without a recognized label (Raw count, Teammates, Checks and Counters, ...)
	SectionUnknown SectionKind = iota
	// SectionMoves lists moves with usage percentages
	SectionMoves
	// SectionAbilities lists abilities in descending usage
	SectionAbilities
	// SectionItems lists held items in descending usage
	SectionItems
	// SectionSpreads lists nature and EV spreads in descending usage
	SectionSpreads
)

var sectionLabels = []struct {
	label string
	kind  SectionKind
}{
	{"Moves", SectionMoves},
	{"Abilities", SectionAbilities},
	{"Items", SectionItems},
	{"Spreads", SectionSpreads},
}

func (k SectionKind) String() string {
	switch k {
	case SectionMoves:
		return "moves"
	case SectionAbilities:
		return "abilities"
	case SectionItems:
		return "items"
	case SectionSpreads:
		return "spreads"
	default:
		return "unknown"
	}
}

// ClassifySection determines a section's kind from its leading label.
// The label may follow a '|' and a single optional space.
func ClassifySection(section string) SectionKind {
	head := strings.TrimPrefix(strings.TrimLeft(section, " "), "|")
	head = strings.TrimPrefix(head, " ")

	for _, l := range sectionLabels {
		if strings.HasPrefix(head, l.label) {
			return l.kind
		}
	}
	return SectionUnknown
}

// bodyLines returns the lines of a section after its header line.
func bodyLines(section string) []string {
	lines := strings.Split(section, "\n")
	if len(lines) <= 1 {
		return nil
	}
	return lines[1:]
}

// cleanLine trims whitespace and one pair of enclosing vertical bars.
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	if len(line) >= 2 && strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|") {
		line = strings.TrimSpace(line[1 : len(line)-1])
	}
	return line
}

// percentLines returns the cleaned body lines that end in '%'.
func percentLines(section string, audit *Audit) []string {
	var out []string
	for _, raw := range bodyLines(section) {
		line := cleanLine(raw)
		switch {
		case line == "":
			audit.discard(ReasonEmpty, raw)
		case !strings.HasSuffix(line, "%"):
			audit.discard(ReasonNoPercent, line)
		default:
			out = append(out, line)
		}
	}
	return out
}
