package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/karobarhq/karobar/internal/core"
	"github.com/karobarhq/karobar/internal/metrics"
	"github.com/karobarhq/karobar/internal/report"
)

// Options selects which artifacts a run produces. Format selection is an
// explicit parameter rather than shared state, so any host UI can drive it.
type Options struct {
	// IncludeFullDump emits the whole snapshot as one pretty-printed JSON file.
	IncludeFullDump bool

	// IncludeReport emits the self-contained interactive HTML report.
	IncludeReport bool

	// CSVTables lists tables to emit as individual delimited-text files.
	// Tables absent from the snapshot are skipped silently.
	CSVTables []string
}

// DefaultOptions produces every artifact kind with the registry's default
// CSV table subset.
func DefaultOptions() Options {
	return Options{
		IncludeFullDump: true,
		IncludeReport:   true,
		CSVTables:       core.DefaultCSVTables(),
	}
}

// Artifact describes one delivered file.
type Artifact struct {
	Filename string `json:"filename"`
	Kind     string `json:"kind"`
	Bytes    int    `json:"bytes"`
}

// Summary is the caller-facing result of one export run.
type Summary struct {
	RunID        string     `json:"runId"`
	Scope        core.Scope `json:"scope"`
	Timestamp    time.Time  `json:"timestamp"`
	TableCount   int        `json:"tableCount"`
	TotalRecords int        `json:"totalRecords"`
	Artifacts    []Artifact `json:"artifacts"`
	DurationMS   int64      `json:"durationMs"`
}

// Exporter runs the fetch → assemble → encode → deliver pipeline.
type Exporter struct {
	assembler *core.Assembler
	prefix    string
	currency  string
}

// NewExporter creates an Exporter. prefix names the exporting product in
// artifact filenames; currency is the display symbol the report renders.
func NewExporter(assembler *core.Assembler, prefix, currency string) *Exporter {
	return &Exporter{assembler: assembler, prefix: prefix, currency: currency}
}

// Run assembles a snapshot for the scope and delivers the requested
// artifacts through the sink.
//
// Per-table fetch failures are absorbed by the assembler. A report-render
// failure downgrades that artifact to a minimal error document so the user
// still receives a file. Sink failures are pipeline-fatal and returned.
func (e *Exporter) Run(ctx context.Context, scope core.Scope, opts Options, sink Sink) (*Summary, error) {
	runID := uuid.NewString()
	start := time.Now()
	logger := slog.With("run_id", runID, "scope", scope)

	logger.Info("export started",
		"full_dump", opts.IncludeFullDump,
		"report", opts.IncludeReport,
		"csv_tables", len(opts.CSVTables),
	)

	snap := e.assembler.Assemble(ctx, scope)
	ts := snap.Metadata.Timestamp

	summary := &Summary{
		RunID:        runID,
		Scope:        scope,
		Timestamp:    ts,
		TableCount:   snap.Metadata.TableCount,
		TotalRecords: snap.Metadata.TotalRecords,
	}

	deliver := func(kind, filename, mimeType string, data []byte) error {
		if err := sink.Deliver(ctx, filename, mimeType, data); err != nil {
			metrics.ExportsTotal.WithLabelValues(string(scope), "error").Inc()
			return fmt.Errorf("deliver %s: %w", filename, err)
		}
		summary.Artifacts = append(summary.Artifacts, Artifact{
			Filename: filename,
			Kind:     kind,
			Bytes:    len(data),
		})
		return nil
	}

	if opts.IncludeFullDump {
		data, err := EncodeDump(snap)
		if err != nil {
			metrics.ExportsTotal.WithLabelValues(string(scope), "error").Inc()
			return nil, err
		}
		if err := deliver("backup", Filename(e.prefix, "backup", ts, "json"), "application/json", data); err != nil {
			return nil, err
		}
	}

	for _, table := range opts.CSVTables {
		rows := snap.Rows(table)
		if len(rows) == 0 {
			continue
		}
		data, err := EncodeCSV(rows)
		if err != nil {
			metrics.ExportsTotal.WithLabelValues(string(scope), "error").Inc()
			return nil, fmt.Errorf("encode csv %s: %w", table, err)
		}
		if err := deliver("csv", Filename(e.prefix, table, ts, "csv"), "text/csv", data); err != nil {
			return nil, err
		}
	}

	if opts.IncludeReport {
		data, err := report.Render(snap, e.currency)
		if err != nil {
			// The user still gets a file rather than a silent failure.
			logger.Error("report render failed, emitting fallback document", "error", err)
			data = report.FallbackDocument(snap.Metadata, err)
		}
		if err := deliver("report", Filename(e.prefix, "report", ts, "html"), "text/html", data); err != nil {
			return nil, err
		}
	}

	summary.DurationMS = time.Since(start).Milliseconds()
	metrics.ExportsTotal.WithLabelValues(string(scope), "ok").Inc()
	metrics.ExportDuration.Observe(time.Since(start).Seconds())
	metrics.RecordsExported.Add(float64(snap.Metadata.TotalRecords))

	logger.Info("export completed",
		"tables", summary.TableCount,
		"records", summary.TotalRecords,
		"artifacts", len(summary.Artifacts),
		"duration_ms", summary.DurationMS,
	)

	return summary, nil
}

// Snapshot assembles without exporting, for callers that render directly.
func (e *Exporter) Snapshot(ctx context.Context, scope core.Scope) *core.Snapshot {
	return e.assembler.Assemble(ctx, scope)
}

// Currency returns the display currency symbol the exporter renders with.
func (e *Exporter) Currency() string {
	return e.currency
}
