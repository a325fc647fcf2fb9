package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/karobarhq/karobar/internal/core"
	"github.com/karobarhq/karobar/internal/metrics"
)

// rehydrate.go reconstructs an in-memory snapshot from a previously exported
// document so the report can be regenerated offline. Both artifact kinds
// round-trip: the structured JSON dump and the interactive report HTML
// (which embeds the snapshot as inline JSON).
//
// Re-hydration always builds a wholly new structure from the uploaded
// bytes; it never aliases a live snapshot.

// snapshotScript locates the embedded snapshot payload inside a report
// document. The id must match the template in template.go.
var snapshotScript = regexp.MustCompile(`(?s)<script[^>]*id="karobar-snapshot"[^>]*>(.*?)</script>`)

// Rehydrate parses an uploaded export artifact into a Snapshot. displayCurrency
// is the symbol currency-denominated strings are rewritten to, applied
// recursively through nested objects and sequences so documents exported
// before the currency switch render consistently.
//
// The returned snapshot carries the uploaded document's own metadata, not
// the metadata of whatever render the caller is replacing.
func Rehydrate(r io.Reader, displayCurrency string) (*core.Snapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	payload, err := extractPayload(raw)
	if err != nil {
		return nil, err
	}

	var snap core.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if snap.Data == nil {
		return nil, fmt.Errorf("document has no data section")
	}

	for table, rows := range snap.Data {
		for i, row := range rows {
			rows[i] = rewriteRowCurrency(row, "$", displayCurrency)
		}
		snap.Data[table] = rows
	}

	metrics.ReportsRehydrated.Inc()
	return &snap, nil
}

// RenderRehydrated renders a report from an uploaded document. The header
// metadata comes from the uploaded document; every statistic is recomputed
// from the re-hydrated data with the same derivations a live render uses.
func RenderRehydrated(r io.Reader, displayCurrency string) ([]byte, error) {
	snap, err := Rehydrate(r, displayCurrency)
	if err != nil {
		return nil, err
	}
	return renderWithStats(snap, Compute(snap.Data, time.Now()), displayCurrency)
}

// extractPayload returns the snapshot JSON from either artifact kind.
// Windows tooling sometimes prepends a UTF-8 BOM to re-saved files, and
// hand-edited files can carry invalid byte sequences; both are repaired
// before parsing rather than rejected.
func extractPayload(raw []byte) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(raw) {
		raw = bytes.ToValidUTF8(raw, []byte("?"))
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("uploaded document is empty")
	}
	if trimmed[0] == '{' {
		return trimmed, nil
	}

	m := snapshotScript.FindSubmatch(trimmed)
	if m == nil {
		return nil, fmt.Errorf("uploaded document is neither a backup dump nor a report")
	}
	return m[1], nil
}
