package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/karobarhq/karobar/internal/config"
	"github.com/karobarhq/karobar/internal/core"
	_ "github.com/karobarhq/karobar/internal/core/tables" // Register all tables
	"github.com/karobarhq/karobar/internal/export"
	"github.com/karobarhq/karobar/internal/logging"
	"github.com/karobarhq/karobar/internal/store"
	"github.com/karobarhq/karobar/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store_backend", cfg.Store.Backend,
		"schedule_enabled", cfg.Schedule.Enabled,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	fetcher, cleanup, err := newFetcher(ctx, cfg)
	if err != nil {
		slog.Error("failed to create store fetcher", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// Log registered tables
	slog.Info("tables registered",
		"count", core.TableCount(),
		"groups", len(core.Groups()),
	)
	for _, group := range core.Groups() {
		tables := core.ByGroup(group)
		slog.Debug("table group", "group", group, "tables", len(tables))
	}

	assembler := core.NewAssembler(fetcher)
	exporter := export.NewExporter(assembler, cfg.Export.ProductPrefix, cfg.Export.Currency)

	// Create server with config
	server := web.NewServer(exporter, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	// Start backup scheduler when enabled
	if cfg.Schedule.Enabled {
		go exporter.StartScheduler(jobCtx, export.ScheduleConfig{
			Interval: cfg.Schedule.Interval,
			Scope:    core.ScopeFull,
			Options:  export.DefaultOptions(),
		}, export.DirSink{Dir: cfg.Export.OutputDir})
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// newFetcher builds the configured store backend. The returned cleanup
// releases pooled resources and is safe to call unconditionally.
func newFetcher(ctx context.Context, cfg *config.Config) (core.Fetcher, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		// Parse and configure connection pool
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

		// Verify connection
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, func() {}, err
		}

		// Log which database we connected to
		if u, err := url.Parse(cfg.Store.DatabaseURL); err == nil {
			dbName := strings.TrimPrefix(u.Path, "/")
			slog.Info("connected to database", "name", dbName)
		} else {
			slog.Info("connected to database")
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
		slog.Info("using hosted store", "url", cfg.Store.SupabaseURL)
		return client, func() {}, nil
	}
}
