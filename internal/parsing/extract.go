package parsing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/usage-stats/internal/types"
)

// MoveThreshold is the usage percentage a move must strictly exceed to be kept.
const MoveThreshold = 15.0

var (
	// itemRegex matches "<name> <d>.<d>%"
	itemRegex = regexp.MustCompile(`^(.*?)\s+(\d+\.\d+)%$`)
	// spreadRegex matches "<Nature>:<hp>/<atk>/<def>/<spa>/<spd>/<spe> <d>.<d>%"
	spreadRegex = regexp.MustCompile(`^(\w+):([\d/]+)\s+(\d+\.\d+)%$`)
)

// ParseMoveset segments a moveset report and extracts one EntityInfo per entity,
// keyed by normalized name. A later block with the same key replaces an earlier one.
func ParseMoveset(text string, audit *Audit) map[string]types.EntityInfo {
	blocks := SegmentBlocks(text)

	infos := make(map[string]types.EntityInfo, len(blocks))
	for _, block := range blocks {
		infos[NormalizeName(block.Name)] = ExtractEntityInfo(block.Sections, audit)
	}
	return infos
}

// ExtractEntityInfo builds an EntityInfo from one entity's raw sections.
// Sections of unknown kind are ignored.
func ExtractEntityInfo(sections []string, audit *Audit) types.EntityInfo {
	info := types.NewEntityInfo()

	for _, section := range sections {
		switch ClassifySection(section) {
		case SectionMoves:
			for name, pct := range extractMoves(section, audit) {
				info.Moves[name] = pct
			}
		case SectionAbilities:
			info.Abilities = append(info.Abilities, extractAbilities(section, audit)...)
		case SectionItems:
			if info.Item == nil {
				info.Item = extractItem(section, audit)
			}
		case SectionSpreads:
			if info.Spread == nil {
				info.Spread = extractSpread(section, audit)
			}
		}
	}

	return info
}

// extractMoves returns moves above MoveThreshold, excluding the "Other" bucket.
func extractMoves(section string, audit *Audit) map[string]float64 {
	moves := make(map[string]float64)

	for _, line := range percentLines(section, audit) {
		name, pctStr, ok := splitPercent(line)
		if !ok {
			audit.discard(ReasonNoName, line)
			continue
		}
		if strings.EqualFold(name, "other") {
			audit.discard(ReasonOther, line)
			continue
		}
		pct, err := parsePercent(pctStr)
		if err != nil {
			audit.discard(ReasonBadNumber, line)
			continue
		}
		if pct <= MoveThreshold {
			audit.discard(ReasonBelowThreshold, line)
			continue
		}
		moves[name] = pct
		audit.keep()
	}

	return moves
}

// extractAbilities returns ability names in line order.
func extractAbilities(section string, audit *Audit) []string {
	var abilities []string

	for _, line := range percentLines(section, audit) {
		name, pctStr, ok := splitPercent(line)
		if !ok {
			audit.discard(ReasonNoName, line)
			continue
		}
		if _, err := parsePercent(pctStr); err != nil {
			audit.discard(ReasonBadNumber, line)
			continue
		}
		abilities = append(abilities, name)
		audit.keep()
	}

	return abilities
}

// extractItem returns the first qualifying item, trusting the source's descending order.
func extractItem(section string, audit *Audit) *string {
	for _, line := range percentLines(section, audit) {
		if strings.Contains(line, "Other") {
			audit.discard(ReasonOther, line)
			continue
		}
		m := itemRegex.FindStringSubmatch(line)
		if m == nil {
			audit.discard(ReasonNoMatch, line)
			continue
		}
		item := strings.TrimSpace(m[1])
		audit.keep()
		return &item
	}
	return nil
}

// extractSpread returns a description of the first qualifying spread.
func extractSpread(section string, audit *Audit) *string {
	for _, line := range percentLines(section, audit) {
		if strings.Contains(line, "Other") {
			audit.discard(ReasonOther, line)
			continue
		}
		m := spreadRegex.FindStringSubmatch(line)
		if m == nil {
			audit.discard(ReasonNoMatch, line)
			continue
		}
		spread := fmt.Sprintf("Nature: %s, EVs: %s", m[1], m[2])
		audit.keep()
		return &spread
	}
	return nil
}

// parsePercent parses a percentage number, rejecting NaN and infinities.
func parsePercent(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("percentage %q is not finite", s)
	}
	return v, nil
}

// splitPercent splits "<name> <number>%" at the last whitespace run.
// The returned number has its '%' removed.
func splitPercent(line string) (name, pct string, ok bool) {
	idx := strings.LastIndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(line[:idx])
	if name == "" {
		return "", "", false
	}
	_, size := utf8.DecodeRuneInString(line[idx:])
	pct = strings.TrimSuffix(line[idx+size:], "%")
	return name, pct, true
}
