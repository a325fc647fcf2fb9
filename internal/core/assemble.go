package core

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/karobarhq/karobar/internal/metrics"
)

// Assembler builds snapshots by fetching every table in a scope through a
// Fetcher and bundling the results with summary metadata.
//
// Table reads are not wrapped in a store-level consistent read snapshot:
// a table fetched later in a run may reflect writes that happened after an
// earlier table was fetched. The snapshot is a best-effort view, not a
// point-in-time-consistent one.
type Assembler struct {
	fetcher Fetcher
	now     func() time.Time
}

// NewAssembler creates an Assembler backed by the given fetcher.
func NewAssembler(fetcher Fetcher) *Assembler {
	return &Assembler{fetcher: fetcher, now: time.Now}
}

// ExportedAtLayout renders the snapshot timestamp for human consumption.
const ExportedAtLayout = "Jan 2, 2006 3:04:05 PM"

// Assemble fetches every table in the scope and builds a Snapshot.
//
// The timestamp is captured once, before any fetch begins, so a single run
// has one consistent identity even though wall-clock time elapses while
// fetching. Fetches run concurrently; there is no ordering dependency
// between tables.
//
// A failed or empty table never aborts the run: it is simply omitted from
// Data, observable only through lower tableCount/totalRecords. Fetch errors
// are logged and counted but not returned.
func (a *Assembler) Assemble(ctx context.Context, scope Scope) *Snapshot {
	ts := a.now().UTC()
	tables := scope.Tables()

	var (
		mu   sync.Mutex
		data = make(map[string][]Row)
		wg   sync.WaitGroup
	)

	for _, table := range tables {
		wg.Add(1)
		go func(table string) {
			defer wg.Done()

			rows, err := a.fetcher.FetchTable(ctx, table)
			if err != nil {
				slog.Warn("table fetch failed, excluding from snapshot",
					"table", table,
					"error", err,
				)
				metrics.TableFetchFailures.WithLabelValues(table).Inc()
				return
			}
			if len(rows) == 0 {
				return
			}

			mu.Lock()
			data[table] = rows
			mu.Unlock()
		}(table)
	}
	wg.Wait()

	total := 0
	for _, rows := range data {
		total += len(rows)
	}

	return &Snapshot{
		Metadata: Metadata{
			Timestamp:    ts,
			ExportedAt:   ts.Format(ExportedAtLayout),
			Version:      scope.Version(),
			TableCount:   len(data),
			TotalRecords: total,
		},
		Data: data,
	}
}
