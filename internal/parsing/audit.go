package parsing

import (
	"log/slog"
	"sort"
)

// Reason classifies why a line was not used.
type Reason string

const (
	// ReasonEmpty is a line with no content after cleaning
	ReasonEmpty Reason = "empty"
	// ReasonNoPercent is a line that does not end in '%'
	ReasonNoPercent Reason = "no_percent"
	// ReasonNoName is a line with no name before the percentage
	ReasonNoName Reason = "no_name"
	// ReasonBadNumber is a percentage that does not parse as a float
	ReasonBadNumber Reason = "bad_number"
	// ReasonOther is an aggregated "Other" row
	ReasonOther Reason = "other"
	// ReasonBelowThreshold is a move at or under the inclusion threshold
	ReasonBelowThreshold Reason = "below_threshold"
	// ReasonNoMatch is an item or spread line that does not fit its pattern
	ReasonNoMatch Reason = "no_match"
	// ReasonRule is a "+ --- +" line framing the ranking table
	ReasonRule Reason = "rule"
	// ReasonShortRow is a ranking row with fewer than four fields
	ReasonShortRow Reason = "short_row"
	// ReasonBadRank is a ranking row whose rank is not an integer
	ReasonBadRank Reason = "bad_rank"
	// ReasonBadUsage is a ranking row whose usage is not a percentage in [0, 100]
	ReasonBadUsage Reason = "bad_usage"
)

// malformed lists the reasons that indicate format drift rather than filtering.
var malformed = map[Reason]bool{
	ReasonNoPercent: true,
	ReasonNoName:    true,
	ReasonBadNumber: true,
	ReasonNoMatch:   true,
	ReasonShortRow:  true,
	ReasonBadRank:   true,
	ReasonBadUsage:  true,
}

// Audit counts the lines a parser kept and discarded for one document.
// A nil *Audit is valid and records nothing.
type Audit struct {
	Document  string
	Kept      int
	Discarded map[Reason]int

	logger *slog.Logger
}

// NewAudit creates an Audit for the named document. Discards are logged at
// debug level when logger is non-nil.
func NewAudit(document string, logger *slog.Logger) *Audit {
	return &Audit{
		Document:  document,
		Discarded: make(map[Reason]int),
		logger:    logger,
	}
}

func (a *Audit) keep() {
	if a == nil {
		return
	}
	a.Kept++
}

func (a *Audit) discard(reason Reason, line string) {
	if a == nil {
		return
	}
	a.Discarded[reason]++
	if a.logger != nil {
		a.logger.Debug("discarded line",
			"document", a.Document,
			"reason", string(reason),
			"line", line,
		)
	}
}

// Count returns how many lines were discarded for reason.
func (a *Audit) Count(reason Reason) int {
	if a == nil {
		return 0
	}
	return a.Discarded[reason]
}

// TotalDiscarded returns the number of discarded lines across all reasons.
func (a *Audit) TotalDiscarded() int {
	if a == nil {
		return 0
	}
	total := 0
	for _, n := range a.Discarded {
		total += n
	}
	return total
}

// Malformed returns the number of lines discarded because they did not have
// the expected shape, excluding deliberate filtering such as thresholds.
func (a *Audit) Malformed() int {
	if a == nil {
		return 0
	}
	total := 0
	for reason, n := range a.Discarded {
		if malformed[reason] {
			total += n
		}
	}
	return total
}

// Reasons returns the recorded reasons in sorted order.
func (a *Audit) Reasons() []Reason {
	if a == nil {
		return nil
	}
	reasons := make([]Reason, 0, len(a.Discarded))
	for r := range a.Discarded {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}
