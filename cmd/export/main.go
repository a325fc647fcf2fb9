// Command export runs a single backup from the command line and writes the
// artifacts to a directory. It shares configuration with the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/karobarhq/karobar/internal/config"
	"github.com/karobarhq/karobar/internal/core"
	_ "github.com/karobarhq/karobar/internal/core/tables" // Register all tables
	"github.com/karobarhq/karobar/internal/export"
	"github.com/karobarhq/karobar/internal/logging"
	"github.com/karobarhq/karobar/internal/store"
)

func main() {
	scopeFlag := flag.String("scope", "full", "export scope: full, financial or sales")
	outFlag := flag.String("out", "", "output directory (default: EXPORT_OUTPUT_DIR)")
	kindsFlag := flag.String("kinds", "backup,csv,report", "comma-separated artifact kinds")
	tablesFlag := flag.String("tables", "", "comma-separated CSV tables (default: registry defaults)")
	timeoutFlag := flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	flag.Parse()

	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("failed to load configuration", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	scope, err := core.ParseScope(*scopeFlag)
	if err != nil {
		fatal("invalid scope", err)
	}

	opts, err := buildOptions(*kindsFlag, *tablesFlag)
	if err != nil {
		fatal("invalid flags", err)
	}

	outDir := cfg.Export.OutputDir
	if *outFlag != "" {
		outDir = *outFlag
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	fetcher, cleanup, err := newFetcher(ctx, cfg)
	if err != nil {
		fatal("failed to create store fetcher", err)
	}
	defer cleanup()

	assembler := core.NewAssembler(fetcher)
	exporter := export.NewExporter(assembler, cfg.Export.ProductPrefix, cfg.Export.Currency)

	summary, err := exporter.Run(ctx, scope, opts, export.DirSink{Dir: outDir})
	if err != nil {
		fatal("export failed", err)
	}

	fmt.Printf("export %s completed: %d tables, %d records, %dms\n",
		summary.RunID, summary.TableCount, summary.TotalRecords, summary.DurationMS)
	for _, a := range summary.Artifacts {
		fmt.Printf("  %-8s %s (%d bytes)\n", a.Kind, a.Filename, a.Bytes)
	}
}

// buildOptions translates the kinds/tables flags into export options.
func buildOptions(kinds, tables string) (export.Options, error) {
	var opts export.Options
	for _, kind := range strings.Split(kinds, ",") {
		switch strings.TrimSpace(kind) {
		case "backup":
			opts.IncludeFullDump = true
		case "report":
			opts.IncludeReport = true
		case "csv":
			opts.CSVTables = core.DefaultCSVTables()
		case "":
		default:
			return opts, fmt.Errorf("unknown artifact kind %q", kind)
		}
	}

	if tables != "" {
		var selected []string
		for _, table := range strings.Split(tables, ",") {
			table = strings.TrimSpace(table)
			if table == "" {
				continue
			}
			if _, ok := core.Get(table); !ok {
				return opts, fmt.Errorf("unknown table %q", table)
			}
			selected = append(selected, table)
		}
		opts.CSVTables = selected
	}

	if !opts.IncludeFullDump && !opts.IncludeReport && len(opts.CSVTables) == 0 {
		return opts, fmt.Errorf("no artifacts selected")
	}
	return opts, nil
}

func newFetcher(ctx context.Context, cfg *config.Config) (core.Fetcher, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		poolConfig, err := pgxpool.ParseConfig(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, func() {}, err
		}
		poolConfig.MaxConns = int32(cfg.Store.MaxConns)
		poolConfig.MinConns = int32(cfg.Store.MinConns)

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, func() {}, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, func() {}, err
		}
		return store.NewPostgres(pool), pool.Close, nil

	default:
		client, err := store.NewSupabase(store.SupabaseConfig{
			URL:     cfg.Store.SupabaseURL,
			APIKey:  cfg.Store.SupabaseKey,
			Timeout: cfg.Store.FetchTimeout,
		})
		if err != nil {
			return nil, func() {}, err
		}
		return client, func() {}, nil
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
