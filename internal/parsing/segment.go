package parsing

import (
	"regexp"
	"strings"
)

// ruleRegex matches the horizontal rules that separate blocks in a moveset report
var ruleRegex = regexp.MustCompile(`\+-+\+`)

// EntityBlock is the run of raw sections that belong to one named entity.
type EntityBlock struct {
	Name     string
	Sections []string
}

// SegmentBlocks splits a moveset report into per-entity blocks in document order.
// Fragments before the first name header are dropped.
func SegmentBlocks(text string) []EntityBlock {
	fragments := ruleRegex.Split(text, -1)

	var blocks []EntityBlock
	for _, raw := range fragments {
		fragment := strings.TrimSpace(raw)

		if isNameHeader(fragment) {
			blocks = append(blocks, EntityBlock{
				Name:     strings.TrimSpace(strings.Trim(fragment, "|")),
				Sections: []string{},
			})
			continue
		}

		if len(blocks) == 0 {
			continue
		}
		last := &blocks[len(blocks)-1]
		last.Sections = append(last.Sections, fragment)
	}

	return blocks
}

// isNameHeader reports whether a trimmed fragment is a single "| Name |" line.
func isNameHeader(fragment string) bool {
	return len(fragment) >= 2 &&
		strings.HasPrefix(fragment, "|") &&
		strings.HasSuffix(fragment, "|") &&
		!strings.ContainsAny(fragment, "\r\n")
}
