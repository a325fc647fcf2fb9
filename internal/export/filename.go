package export

import (
	"strings"
	"time"
)

// Filename builds the artifact filename:
//
//	<product-prefix>-<export-kind>-<sanitized-timestamp>.<ext>
//
// The timestamp is rendered as RFC 3339 and then sanitized to be
// filesystem-safe: colons and dots become dashes. All artifacts of one run
// share the run's captured timestamp, so they sort and group together.
func Filename(prefix, kind string, ts time.Time, ext string) string {
	return prefix + "-" + kind + "-" + sanitizeTimestamp(ts) + "." + ext
}

func sanitizeTimestamp(ts time.Time) string {
	s := ts.UTC().Format(time.RFC3339)
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, ".", "-")
	return s
}
