// Package core provides the business logic for snapshot assembly and export.
// This package has no UI or transport dependencies and can be used by any frontend.
package core

import (
	"context"
	"time"
)

// SnapshotVersion identifies the snapshot schema/generator revision.
// Scoped snapshots append the scope name so downstream consumers can tell
// a full backup from a partial one.
const SnapshotVersion = "2.0.0"

// Row is one record as returned by the remote store. The shape is whatever
// the store returns, not fixed by this subsystem; fields vary by table and
// even by row, so all consumers must tolerate absent keys.
type Row map[string]any

// Metadata summarizes a snapshot at assembly time.
// TableCount and TotalRecords are computed once and never recomputed lazily.
type Metadata struct {
	Timestamp    time.Time `json:"timestamp"`
	ExportedAt   string    `json:"exportedAt"`
	Version      string    `json:"version"`
	TableCount   int       `json:"tableCount"`
	TotalRecords int       `json:"totalRecords"`
}

// Snapshot is the root export artifact: a versioned, timestamped bundle of
// fetched table data plus summary metadata.
//
// A table key appears in Data only if its fetch succeeded and returned at
// least one row. Empty and failed tables are omitted entirely.
type Snapshot struct {
	Metadata Metadata         `json:"metadata"`
	Data     map[string][]Row `json:"data"`
}

// Rows returns the rows for a table, or nil if the table is absent.
// Statistics treat absent tables as empty sequences, never as errors.
func (s *Snapshot) Rows(table string) []Row {
	if s == nil || s.Data == nil {
		return nil
	}
	return s.Data[table]
}

// Fetcher retrieves the full contents of one whitelisted table from the
// remote store. Implementations live in internal/store.
//
// The sales table is fetched with a join resolving the related user's
// display name, region, and email; all other tables come back flat.
// Fetchers perform no retries and no backoff.
type Fetcher interface {
	FetchTable(ctx context.Context, table string) ([]Row, error)
}

// TableInfo describes one of the fixed set of domain tables.
type TableInfo struct {
	Key   string // Unique identifier: "cash_transactions"
	Group string // Domain group: "finance", "inventory", ...
	Label string // Display name: "Cash Transactions"

	// JoinUsers marks tables whose fetch resolves the related user's
	// name, region, and email (only sales today).
	JoinUsers bool

	// DefaultCSV marks tables included in the per-table CSV output when
	// the caller does not choose an explicit subset.
	DefaultCSV bool
}
