package report

import (
	"bytes"
	"html/template"

	"github.com/karobarhq/karobar/internal/core"
)

// FallbackDocument produces a minimal error document when the report
// template fails to render (for example when malformed data defeats the
// renderer). The user still receives a file instead of a silent failure.
func FallbackDocument(meta core.Metadata, cause error) []byte {
	var buf bytes.Buffer
	// The fallback template is trivial enough that it cannot itself fail
	// on any metadata value.
	_ = fallbackTemplate.Execute(&buf, struct {
		Meta  core.Metadata
		Cause string
	}{Meta: meta, Cause: cause.Error()})
	return buf.Bytes()
}

var fallbackTemplate = template.Must(template.New("fallback").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Karobar Report: Render Failed</title></head>
<body style="font-family:sans-serif;max-width:640px;margin:48px auto;color:#1f2733">
<h1>Report could not be rendered</h1>
<p>The snapshot was assembled, but the report renderer failed:</p>
<pre style="background:#f4f5f7;padding:12px;border-radius:6px;white-space:pre-wrap">{{.Cause}}</pre>
<p>
Snapshot generated {{.Meta.ExportedAt}} (version {{.Meta.Version}}),
covering {{.Meta.TableCount}} tables and {{.Meta.TotalRecords}} records.
The structured JSON backup from the same run contains the full data.
</p>
</body>
</html>
`))
