package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/karobarhq/karobar/internal/core"
	"github.com/karobarhq/karobar/internal/export"
	"github.com/karobarhq/karobar/internal/report"

	"github.com/go-chi/chi/v5"
)

var (
	errRateLimited     = errors.New("rate limit exceeded")
	errUnknownKind     = errors.New("unknown artifact kind, want backup, csv or report")
	errMissingTable    = errors.New("csv download requires a table parameter")
	errNoUploadedFile  = errors.New("no file uploaded under form field \"file\"")
	errUploadTooLarge  = errors.New("uploaded file exceeds the size limit")
	errNothingSelected = errors.New("export selects no artifacts")
)

// handleHealth responds to liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

// tableResponse is the public view of one registered table.
type tableResponse struct {
	Key        string `json:"key"`
	Group      string `json:"group"`
	Label      string `json:"label"`
	DefaultCSV bool   `json:"defaultCsv"`
}

// handleListTables returns the registered tables grouped as the registry
// orders them.
func (s *Server) handleListTables(w http.ResponseWriter, _ *http.Request) {
	infos := core.All()
	tables := make([]tableResponse, 0, len(infos))
	for _, info := range infos {
		tables = append(tables, tableResponse{
			Key:        info.Key,
			Group:      info.Group,
			Label:      info.Label,
			DefaultCSV: info.DefaultCSV,
		})
	}
	respondJSON(w, map[string]any{
		"count":  len(tables),
		"tables": tables,
	})
}

// exportRequest selects scope and artifacts for a run. Omitted fields fall
// back to the default artifact set.
type exportRequest struct {
	Scope     string   `json:"scope"`
	FullDump  *bool    `json:"fullDump"`
	Report    *bool    `json:"report"`
	CSVTables []string `json:"csvTables"`
}

// handleExport runs a backup into the configured output directory and
// returns the run summary.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, r, fmt.Errorf("decode request: %w", err), http.StatusBadRequest)
			return
		}
	}

	scope, err := core.ParseScope(req.Scope)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	opts := export.DefaultOptions()
	if req.FullDump != nil {
		opts.IncludeFullDump = *req.FullDump
	}
	if req.Report != nil {
		opts.IncludeReport = *req.Report
	}
	if req.CSVTables != nil {
		for _, table := range req.CSVTables {
			if _, ok := core.Get(table); !ok {
				respondError(w, r, fmt.Errorf("unknown table %q", table), http.StatusBadRequest)
				return
			}
		}
		opts.CSVTables = req.CSVTables
	}
	if !opts.IncludeFullDump && !opts.IncludeReport && len(opts.CSVTables) == 0 {
		respondError(w, r, errNothingSelected, http.StatusBadRequest)
		return
	}

	sink := export.DirSink{Dir: s.cfg.Export.OutputDir}
	summary, err := s.exporter.Run(r.Context(), scope, opts, sink)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	respondJSON(w, summary)
}

// handleDownload streams a single freshly produced artifact as a browser
// download. kind selects backup, report, or csv; csv additionally needs a
// table parameter.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	scope, err := core.ParseScope(chi.URLParam(r, "scope"))
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	var opts export.Options
	switch kind := r.URL.Query().Get("kind"); kind {
	case "", "backup":
		opts.IncludeFullDump = true
	case "report":
		opts.IncludeReport = true
	case "csv":
		table := r.URL.Query().Get("table")
		if table == "" {
			respondError(w, r, errMissingTable, http.StatusBadRequest)
			return
		}
		if _, ok := core.Get(table); !ok {
			respondError(w, r, fmt.Errorf("unknown table %q", table), http.StatusBadRequest)
			return
		}
		opts.CSVTables = []string{table}
	default:
		respondError(w, r, errUnknownKind, http.StatusBadRequest)
		return
	}

	delivered := false
	sink := export.SinkFunc(func(_ context.Context, filename, mimeType string, data []byte) error {
		delivered = true
		w.Header().Set("Content-Type", mimeType)
		w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		_, err := w.Write(data)
		return err
	})

	if _, err := s.exporter.Run(r.Context(), scope, opts, sink); err != nil {
		if !delivered {
			respondError(w, r, err, http.StatusInternalServerError)
		}
		return
	}
	if !delivered {
		// A csv download for a table with no rows produces nothing.
		respondError(w, r, errors.New("no data for requested artifact"), http.StatusNotFound)
	}
}

// handleLiveReport renders the interactive report from live data.
func (s *Server) handleLiveReport(w http.ResponseWriter, r *http.Request) {
	scope, err := core.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	snap := s.exporter.Snapshot(r.Context(), scope)
	data, err := report.Render(snap, s.exporter.Currency())
	if err != nil {
		respondError(w, r, fmt.Errorf("render report: %w", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// handleUploadReport re-hydrates an uploaded backup dump or report document
// into a fresh interactive report.
func (s *Server) handleUploadReport(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Export.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, r, errUploadTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		respondError(w, r, fmt.Errorf("parse upload: %w", err), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, errNoUploadedFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := report.RenderRehydrated(file, s.exporter.Currency())
	if err != nil {
		respondError(w, r, fmt.Errorf("re-hydrate report: %w", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}
