package parsing

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAudit_NilSafe(t *testing.T) {
	var audit *Audit
	audit.keep()
	audit.discard(ReasonEmpty, "")

	assert.Equal(t, 0, audit.Count(ReasonEmpty))
	assert.Equal(t, 0, audit.TotalDiscarded())
	assert.Equal(t, 0, audit.Malformed())
	assert.Nil(t, audit.Reasons())
}

func TestAudit_Counts(t *testing.T) {
	audit := NewAudit("doc", nil)
	audit.keep()
	audit.keep()
	audit.discard(ReasonOther, "Other 1.000%")
	audit.discard(ReasonBadNumber, "Surf x%")
	audit.discard(ReasonBelowThreshold, "Growl 1.000%")

	assert.Equal(t, 2, audit.Kept)
	assert.Equal(t, 3, audit.TotalDiscarded())
	assert.Equal(t, 1, audit.Malformed())
	assert.Equal(t, []Reason{ReasonBadNumber, ReasonBelowThreshold, ReasonOther}, audit.Reasons())
}

func TestAudit_LogsDiscardsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	audit := NewAudit("gen9ou-0.txt", logger)
	audit.discard(ReasonNoPercent, "Nasty Plot")

	out := buf.String()
	assert.Contains(t, out, "discarded line")
	assert.Contains(t, out, "document=gen9ou-0.txt")
	assert.Contains(t, out, "reason=no_percent")
}
