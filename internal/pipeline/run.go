// Package pipeline provides the high-level orchestration for the usage generation process.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/usage-stats/internal/export"
	"github.com/jonathan/usage-stats/internal/fetch"
	"github.com/jonathan/usage-stats/internal/merge"
	"github.com/jonathan/usage-stats/internal/parsing"
	"github.com/jonathan/usage-stats/internal/pipeline/steps"
	"github.com/jonathan/usage-stats/internal/schemas"
	"github.com/jonathan/usage-stats/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Index    int    `json:"index"` // 1-based position in steps.Order()
	Total    int    `json:"total"`
	RunID    string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Document is the text of one report together with a display name.
type Document struct {
	Name string
	Text string
}

// Options holds configuration for fetching reports and generating output.
type Options struct {
	// Reports lists the sources in priority order. The ranking table is taken
	// from the first report; movesets are taken from all of them.
	Reports []fetch.ReportID
	BaseURL string
	Output  string
	Limit   int

	Fetcher    *fetch.CachedFetcher // Optional; a default fetcher is created when nil
	Logger     *slog.Logger         // Optional; slog.Default() when nil
	OnProgress ProgressCallback
}

// LocalOptions holds configuration for generating output from report files on disk.
type LocalOptions struct {
	RankingPath  string
	MovesetPaths []string // Priority order
	Output       string
	Limit        int

	Logger     *slog.Logger
	OnProgress ProgressCallback
}

// Result holds the outputs of a run.
type Result struct {
	RunID   uuid.UUID
	Records []types.MergedRecord
	Report  merge.Report
	Sources []string         // Source names in priority order
	Audits  []*parsing.Audit // Ranking audit first, then one per moveset
	Output  string
}

// tracker enforces step ordering and reports progress.
type tracker struct {
	runID      uuid.UUID
	logger     *slog.Logger
	onProgress ProgressCallback
	completed  map[string]bool
	position   map[string]int
}

func newTracker(runID uuid.UUID, logger *slog.Logger, onProgress ProgressCallback) *tracker {
	order := steps.Order()
	position := make(map[string]int, len(order))
	for i, step := range order {
		position[step] = i + 1
	}
	return &tracker{
		runID:      runID,
		logger:     logger,
		onProgress: onProgress,
		completed:  make(map[string]bool, len(order)),
		position:   position,
	}
}

func (t *tracker) start(step, message string) error {
	if err := steps.ValidateDependencies(t.completed, step); err != nil {
		t.logger.Error("step blocked", "step", step, "blocked", steps.GetBlockedSteps(t.completed))
		return err
	}
	t.logger.Debug("step started", "step", step, "index", t.position[step])
	if t.onProgress != nil {
		t.onProgress(ProgressEvent{
			Step:     step,
			Category: steps.StepRegistry[step].Category,
			Message:  message,
			Index:    t.position[step],
			Total:    len(t.position),
			RunID:    t.runID.String(),
		})
	}
	return nil
}

func (t *tracker) done(step string) {
	t.completed[step] = true
}

// Run fetches the ranking and moveset reports for opts.Reports, merges them
// and writes the result to opts.Output. Any fetch failure aborts the run
// before parsing, and no output is written.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Reports) == 0 {
		return nil, fmt.Errorf("at least one report is required")
	}
	if opts.Output == "" {
		return nil, fmt.Errorf("output path is required")
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = fetch.DefaultBaseURL
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = fetch.NewCachedFetcher(nil)
	}

	runID := uuid.New()
	logger := loggerOrDefault(opts.Logger).With("run_id", runID.String())
	t := newTracker(runID, logger, opts.OnProgress)

	primary := opts.Reports[0]
	if err := t.start(steps.LoadReports, fmt.Sprintf("Fetching %d reports for %s", len(opts.Reports)+1, primary.Period)); err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(opts.Reports)+1)
	urls = append(urls, fetch.RankingURL(baseURL, primary))
	for _, report := range opts.Reports {
		urls = append(urls, fetch.MovesetURL(baseURL, report))
	}

	logger.Info("fetching reports", "count", len(urls), "primary", primary.Name(), "period", primary.Period)
	results, err := fetcher.FetchAll(ctx, urls)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}
	for _, r := range results {
		logger.Debug("fetched report", "url", r.URL, "bytes", len(r.Body), "from_cache", r.FromCache)
	}
	t.done(steps.LoadReports)

	ranking := Document{Name: primary.Name() + " ranking", Text: results[0].Body}
	movesets := make([]Document, len(opts.Reports))
	for i, report := range opts.Reports {
		movesets[i] = Document{Name: report.Name(), Text: results[i+1].Body}
	}

	result, err := generate(ctx, t, ranking, movesets, opts.Limit, opts.Output)
	if err != nil {
		// Reports that produced a failed run are fetched again next time.
		for _, u := range urls {
			fetcher.InvalidateCache(u)
		}
		return nil, err
	}
	return result, nil
}

// RunLocal generates output from report files already on disk.
func RunLocal(ctx context.Context, opts LocalOptions) (*Result, error) {
	if opts.RankingPath == "" {
		return nil, fmt.Errorf("ranking file is required")
	}
	if len(opts.MovesetPaths) == 0 {
		return nil, fmt.Errorf("at least one moveset file is required")
	}
	if opts.Output == "" {
		return nil, fmt.Errorf("output path is required")
	}

	runID := uuid.New()
	logger := loggerOrDefault(opts.Logger).With("run_id", runID.String())
	t := newTracker(runID, logger, opts.OnProgress)

	if err := t.start(steps.LoadReports, fmt.Sprintf("Reading %d report files", len(opts.MovesetPaths)+1)); err != nil {
		return nil, err
	}
	rankingText, err := os.ReadFile(opts.RankingPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read ranking file: %w", err)
	}
	ranking := Document{Name: fileStem(opts.RankingPath) + " ranking", Text: string(rankingText)}

	movesets := make([]Document, 0, len(opts.MovesetPaths))
	for _, path := range opts.MovesetPaths {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read moveset file: %w", err)
		}
		movesets = append(movesets, Document{Name: fileStem(path), Text: string(text)})
	}
	logger.Info("read reports", "ranking", opts.RankingPath, "movesets", len(movesets))
	t.done(steps.LoadReports)

	return generate(ctx, t, ranking, movesets, opts.Limit, opts.Output)
}

// Generate parses and merges already loaded documents without writing anything.
func Generate(ranking Document, movesets []Document, limit int, logger *slog.Logger) (*Result, error) {
	runID := uuid.New()
	logger = loggerOrDefault(logger).With("run_id", runID.String())
	t := newTracker(runID, logger, nil)
	t.done(steps.LoadReports)
	return parseAndMerge(t, ranking, movesets, limit)
}

// generate runs every step after loading: parse, merge, write, validate.
func generate(ctx context.Context, t *tracker, ranking Document, movesets []Document, limit int, output string) (*Result, error) {
	result, err := parseAndMerge(t, ranking, movesets, limit)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := t.start(steps.WriteOutput, fmt.Sprintf("Writing %d records to %s", len(result.Records), output)); err != nil {
		return nil, err
	}
	if err := export.WriteJSON(output, result.Records); err != nil {
		return nil, err
	}
	result.Output = output
	t.done(steps.WriteOutput)

	if err := t.start(steps.ValidateOutput, "Validating output against schema"); err != nil {
		return nil, err
	}
	if err := schemas.ValidateUsageFile(output); err != nil {
		return nil, fmt.Errorf("output failed schema validation: %w", err)
	}
	t.done(steps.ValidateOutput)

	t.logger.Info("wrote usage file",
		"output", output,
		"records", len(result.Records),
		"ranked", result.Report.Ranked,
		"appended", result.Report.Appended,
	)
	return result, nil
}

func parseAndMerge(t *tracker, ranking Document, movesets []Document, limit int) (*Result, error) {
	result := &Result{RunID: t.runID}

	if err := t.start(steps.ParseMovesets, fmt.Sprintf("Parsing %d moveset reports", len(movesets))); err != nil {
		return nil, err
	}
	sources := make([]merge.Source, 0, len(movesets))
	movesetAudits := make([]*parsing.Audit, 0, len(movesets))
	for _, doc := range movesets {
		audit := parsing.NewAudit(doc.Name, t.logger)
		infos := parsing.ParseMoveset(doc.Text, audit)
		sources = append(sources, merge.Source{Name: doc.Name, Infos: infos})
		result.Sources = append(result.Sources, doc.Name)
		movesetAudits = append(movesetAudits, audit)
		logAudit(t.logger, audit, "entities", len(infos))
	}
	t.done(steps.ParseMovesets)

	if err := t.start(steps.ParseRanking, "Parsing ranking table"); err != nil {
		return nil, err
	}
	rankingAudit := parsing.NewAudit(ranking.Name, t.logger)
	entries, err := parsing.ParseRankingLimit(ranking.Text, limit, rankingAudit)
	if err != nil {
		return nil, err
	}
	result.Audits = append([]*parsing.Audit{rankingAudit}, movesetAudits...)
	logAudit(t.logger, rankingAudit, "entries", len(entries))
	t.done(steps.ParseRanking)

	if err := t.start(steps.MergeRecords, "Merging ranking with moveset sources"); err != nil {
		return nil, err
	}
	result.Records, result.Report = merge.MergeWithReport(entries, sources)
	t.logger.Info("merged records",
		"ranked", result.Report.Ranked,
		"dropped", result.Report.Dropped,
		"appended", result.Report.Appended,
	)
	t.done(steps.MergeRecords)

	return result, nil
}

// logAudit logs a document summary, raising the level when lines had an unexpected shape.
func logAudit(logger *slog.Logger, audit *parsing.Audit, countKey string, count int) {
	args := []any{
		"document", audit.Document,
		countKey, count,
		"kept", audit.Kept,
		"discarded", audit.TotalDiscarded(),
	}
	if n := audit.Malformed(); n > 0 {
		logger.Warn("parsed document with malformed lines", append(args, "malformed", n)...)
		return
	}
	logger.Info("parsed document", args...)
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
