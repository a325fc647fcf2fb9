package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/karobarhq/karobar/internal/config"
	"github.com/karobarhq/karobar/internal/core"
	"github.com/karobarhq/karobar/internal/export"
)

type fakeFetcher struct {
	rows map[string][]core.Row
}

func (f *fakeFetcher) FetchTable(_ context.Context, table string) ([]core.Row, error) {
	return f.rows[table], nil
}

func registerWebTables(t *testing.T) {
	t.Helper()
	core.Clear()
	t.Cleanup(core.Clear)

	core.Register(core.TableInfo{Key: "sales", Group: "sales", Label: "Sales", DefaultCSV: true})
	core.Register(core.TableInfo{Key: "products", Group: "catalog", Label: "Products"})
	core.Register(core.TableInfo{Key: "requests", Group: "sales", Label: "Product Requests"})
	core.Register(core.TableInfo{Key: "product_request_items", Group: "sales", Label: "Request Items"})
}

func newTestServer(t *testing.T, rows map[string][]core.Row) *Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Export.OutputDir = t.TempDir()
	cfg.Export.ProductPrefix = "karobar"
	cfg.Export.Currency = "₹"
	cfg.Export.MaxUploadSize = 1 << 20
	cfg.Rate.Enabled = false

	assembler := core.NewAssembler(&fakeFetcher{rows: rows})
	exporter := export.NewExporter(assembler, cfg.Export.ProductPrefix, cfg.Export.Currency)
	return NewServer(exporter, cfg)
}

func doRequest(s *Server, method, target string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	registerWebTables(t)
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/healthz", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s, want ok status", rec.Body.String())
	}
}

func TestListTables(t *testing.T) {
	registerWebTables(t)
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/tables", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Count  int `json:"count"`
		Tables []struct {
			Key   string `json:"key"`
			Group string `json:"group"`
		} `json:"tables"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 4 || len(resp.Tables) != 4 {
		t.Errorf("count = %d/%d, want 4", resp.Count, len(resp.Tables))
	}
}

func TestExportWritesArtifacts(t *testing.T) {
	registerWebTables(t)
	s := newTestServer(t, map[string][]core.Row{
		"sales":    {{"id": 1.0, "total_amount": 100.0}},
		"products": {{"id": 1.0}},
	})

	body := bytes.NewBufferString(`{"scope":"sales"}`)
	rec := doRequest(s, http.MethodPost, "/api/export", body, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var summary export.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if summary.Scope != core.ScopeSales {
		t.Errorf("scope = %q, want sales", summary.Scope)
	}
	// backup + sales CSV + report
	if len(summary.Artifacts) != 3 {
		t.Fatalf("artifacts = %d, want 3", len(summary.Artifacts))
	}

	// The artifacts landed in the output directory.
	for _, a := range summary.Artifacts {
		path := filepath.Join(s.cfg.Export.OutputDir, a.Filename)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("artifact %s not written: %v", a.Filename, err)
		}
	}
}

func TestExportBadRequests(t *testing.T) {
	registerWebTables(t)
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"invalid scope", `{"scope":"everything"}`},
		{"unknown csv table", `{"csvTables":["secrets"]}`},
		{"nothing selected", `{"fullDump":false,"report":false,"csvTables":[]}`},
		{"malformed json", `{"scope":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodPost, "/api/export", bytes.NewBufferString(tt.body), "application/json")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
				t.Errorf("body = %s, want error payload", rec.Body.String())
			}
		})
	}
}

func TestDownloadCSV(t *testing.T) {
	registerWebTables(t)
	s := newTestServer(t, map[string][]core.Row{
		"sales": {{"id": 1.0, "total_amount": 100.0}},
	})

	rec := doRequest(s, http.MethodGet, "/api/export/sales/download?kind=csv&table=sales", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, `attachment; filename="karobar-sales-`) {
		t.Errorf("Content-Disposition = %q, want attachment with run filename", cd)
	}
	if !strings.Contains(rec.Body.String(), "total_amount") {
		t.Errorf("body = %q, want CSV header", rec.Body.String())
	}
}

func TestDownloadBackupDefaultKind(t *testing.T) {
	registerWebTables(t)
	s := newTestServer(t, map[string][]core.Row{
		"sales": {{"id": 1.0}},
	})

	rec := doRequest(s, http.MethodGet, "/api/export/full/download", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestDownloadErrors(t *testing.T) {
	registerWebTables(t)
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"unknown kind", "/api/export/sales/download?kind=zip", http.StatusBadRequest},
		{"csv without table", "/api/export/sales/download?kind=csv", http.StatusBadRequest},
		{"unknown table", "/api/export/sales/download?kind=csv&table=secrets", http.StatusBadRequest},
		{"unknown scope", "/api/export/everything/download", http.StatusBadRequest},
		{"empty table", "/api/export/sales/download?kind=csv&table=sales", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodGet, tt.target, nil, "")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestLiveReport(t *testing.T) {
	registerWebTables(t)
	s := newTestServer(t, map[string][]core.Row{
		"sales": {{"id": 1.0, "total_amount": 100.0}},
	})

	rec := doRequest(s, http.MethodGet, "/api/report", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), `id="karobar-snapshot"`) {
		t.Error("report missing embedded snapshot")
	}
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(content)
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestUploadReportRehydrates(t *testing.T) {
	registerWebTables(t)
	s := newTestServer(t, nil)

	snap := &core.Snapshot{
		Metadata: core.Metadata{
			Timestamp:    time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
			ExportedAt:   "Aug 29, 2026 10:00:00 AM",
			Version:      "2.0.0",
			TableCount:   1,
			TotalRecords: 1,
		},
		Data: map[string][]core.Row{
			"sales": {{"id": 1.0, "total_amount": 100.0}},
		},
	}
	dump, _ := json.Marshal(snap)

	body, contentType := multipartUpload(t, "file", "backup.json", dump)
	rec := doRequest(s, http.MethodPost, "/api/report", body, contentType)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Aug 29, 2026 10:00:00 AM") {
		t.Error("re-hydrated report missing uploaded document's timestamp")
	}
}

func TestUploadReportRejectsGarbage(t *testing.T) {
	registerWebTables(t)
	s := newTestServer(t, nil)

	body, contentType := multipartUpload(t, "file", "junk.bin", []byte("not a backup"))
	rec := doRequest(s, http.MethodPost, "/api/report", body, contentType)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestUploadReportMissingFile(t *testing.T) {
	registerWebTables(t)
	s := newTestServer(t, nil)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("other", "value")
	w.Close()

	rec := doRequest(s, http.MethodPost, "/api/report", &buf, w.FormDataContentType())
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)

	if !rl.allow("1.2.3.4") || !rl.allow("1.2.3.4") {
		t.Fatal("first requests within limit denied")
	}
	if rl.allow("1.2.3.4") {
		t.Error("request over the limit allowed")
	}
	// Other clients are unaffected.
	if !rl.allow("5.6.7.8") {
		t.Error("separate client denied")
	}
}
