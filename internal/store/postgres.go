package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/karobarhq/karobar/internal/core"
)

// Postgres fetches tables directly from a Postgres database, for
// self-hosted deployments that do not sit behind PostgREST.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres-backed fetcher on an existing pool.
// The caller owns the pool and its lifecycle.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// salesJoinSQL enriches each sale with the selling user's name, region,
// and email, mirroring the PostgREST embedded-resource select.
const salesJoinSQL = `
SELECT s.*, u.name AS user_name, u.region AS user_region, u.email AS user_email
FROM sales s
LEFT JOIN users u ON u.id = s.user_id`

// FetchTable retrieves all rows of one whitelisted table as generic maps.
// Table names never reach SQL unless they are present in the registry.
func (p *Postgres) FetchTable(ctx context.Context, table string) ([]core.Row, error) {
	info, ok := core.Get(table)
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}

	query := "SELECT * FROM " + pgx.Identifier{table}.Sanitize()
	if info.JoinUsers {
		query = salesJoinSQL
	}

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var result []core.Row

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", table, err)
		}

		row := make(core.Row, len(fields))
		for i, fd := range fields {
			row[string(fd.Name)] = normalizeValue(values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", table, err)
	}

	return result, nil
}

// normalizeValue converts driver-specific values into the same loosely typed
// shapes the PostgREST backend produces, so downstream code sees one format.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	case [16]byte: // uuid
		return fmt.Sprintf("%x-%x-%x-%x-%x", t[0:4], t[4:6], t[6:8], t[8:10], t[10:16])
	case pgtype.Numeric:
		// NUMERIC money columns must come out as plain numbers, matching
		// what PostgREST serializes.
		f, err := t.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	default:
		return v
	}
}
