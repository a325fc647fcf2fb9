package export

// scheduler.go provides background scheduling for unattended backups.
//
// When enabled, a full-scope export runs immediately on startup and then on
// every interval tick, writing artifacts to the configured directory sink.
// The scheduler is long-running and context-aware for graceful shutdown.
// Individual run failures are logged but never stop the loop.

import (
	"context"
	"log/slog"
	"time"

	"github.com/karobarhq/karobar/internal/core"
)

// ScheduleConfig holds configuration for the backup scheduler.
type ScheduleConfig struct {
	Interval time.Duration // How often to run (e.g. 24h)
	Scope    core.Scope    // Scope each run covers (normally full)
	Options  Options       // Artifact kinds each run produces
}

// StartScheduler starts a background loop that runs scheduled backups into
// the sink. It runs once immediately, then every Interval. The loop stops
// when the context is cancelled.
func (e *Exporter) StartScheduler(ctx context.Context, cfg ScheduleConfig, sink Sink) {
	slog.Info("backup scheduler started",
		"interval", cfg.Interval,
		"scope", cfg.Scope,
	)

	e.runScheduled(ctx, cfg, sink)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("backup scheduler stopped")
			return
		case <-ticker.C:
			e.runScheduled(ctx, cfg, sink)
		}
	}
}

func (e *Exporter) runScheduled(ctx context.Context, cfg ScheduleConfig, sink Sink) {
	summary, err := e.Run(ctx, cfg.Scope, cfg.Options, sink)
	if err != nil {
		slog.Error("scheduled backup failed", "error", err)
		return
	}
	slog.Info("scheduled backup completed",
		"run_id", summary.RunID,
		"tables", summary.TableCount,
		"records", summary.TotalRecords,
		"artifacts", len(summary.Artifacts),
	)
}
