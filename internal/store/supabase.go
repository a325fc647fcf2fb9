// Package store implements the remote data-access collaborators behind the
// core.Fetcher interface. Two backends exist: the hosted Supabase/PostgREST
// API and a direct Postgres connection for self-hosted deployments.
//
// The export pipeline is read-only; neither backend performs writes.
package store

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/karobarhq/karobar/internal/core"
)

// salesUserSelect resolves the related user's display name, region, and
// email through a PostgREST embedded resource. Recent-transaction displays
// and user-attribution analytics need these three fields; everything else
// is fetched flat.
const salesUserSelect = "*,users(name,region,email)"

// Supabase fetches tables through the Supabase PostgREST API.
type Supabase struct {
	client *resty.Client
}

// SupabaseConfig holds connection settings for the hosted store.
type SupabaseConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// NewSupabase creates a PostgREST-backed fetcher.
func NewSupabase(cfg SupabaseConfig) (*Supabase, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.URL, "/")).
		SetTimeout(timeout).
		SetHeader("apikey", cfg.APIKey).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("Accept", "application/json")

	return &Supabase{client: client}, nil
}

// FetchTable retrieves all rows of one whitelisted table.
// Unknown tables are rejected before any request is made.
func (s *Supabase) FetchTable(ctx context.Context, table string) ([]core.Row, error) {
	info, ok := core.Get(table)
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}

	sel := "*"
	if info.JoinUsers {
		sel = salesUserSelect
	}

	var rows []core.Row
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("select", sel).
		SetResult(&rows).
		Get("/rest/v1/" + table)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", table, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d: %s", table, resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return rows, nil
}
