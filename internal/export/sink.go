// Package export serializes snapshots into deliverable artifacts.
//
// The exporter produces one artifact per requested output kind (structured
// JSON dump, per-table CSV, interactive HTML report) and hands each fully
// encoded artifact to a Sink. Encodings are produced entirely in memory
// before handoff; a sink never sees a partially written artifact.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives a finished artifact. In the HTTP deployment this streams a
// browser download; the CLI and scheduler write to the filesystem. The
// exporter has no knowledge of where the bytes end up.
type Sink interface {
	Deliver(ctx context.Context, filename, mimeType string, data []byte) error
}

// DirSink writes artifacts into a directory, creating it if needed.
type DirSink struct {
	Dir string
}

// Deliver writes the artifact as a file under the sink directory.
func (s DirSink) Deliver(_ context.Context, filename, _ string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, filename, mimeType string, data []byte) error

func (f SinkFunc) Deliver(ctx context.Context, filename, mimeType string, data []byte) error {
	return f(ctx, filename, mimeType, data)
}
