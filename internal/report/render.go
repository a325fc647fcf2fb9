package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/karobarhq/karobar/internal/core"
)

// Render produces the interactive report document: a single self-contained
// HTML file embedding the snapshot data, the derived statistics, and a
// minimal script runtime for tab navigation, row search, and replace-data
// re-upload. The artifact is viewable without the application and makes no
// network calls at view time.
func Render(snap *core.Snapshot, currency string) ([]byte, error) {
	stats := Compute(snap.Data, time.Now())
	return renderWithStats(snap, stats, currency)
}

func renderWithStats(snap *core.Snapshot, stats *Stats, currency string) ([]byte, error) {
	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("embed snapshot: %w", err)
	}

	cfgJSON, err := json.Marshal(pageConfig{
		Currency: currency,
		Sections: Sections,
		Labels:   tableLabels(),
	})
	if err != nil {
		return nil, fmt.Errorf("embed config: %w", err)
	}

	page := pageData{
		Meta:     snap.Metadata,
		Currency: currency,
		Stats:    stats,
		Sections: buildSectionViews(snap.Data),
		// json.Marshal escapes <, >, and & so the payload is safe
		// inside a script element.
		SnapshotJSON: template.JS(snapJSON),
		ConfigJSON:   template.JS(cfgJSON),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

type pageData struct {
	Meta         core.Metadata
	Currency     string
	Stats        *Stats
	Sections     []sectionView
	SnapshotJSON template.JS
	ConfigJSON   template.JS
}

type pageConfig struct {
	Currency string            `json:"currency"`
	Sections []Section         `json:"sections"`
	Labels   map[string]string `json:"labels"`
}

type sectionView struct {
	Section
	Visible    bool
	TableViews []tableView
}

type tableView struct {
	Key     string
	Label   string
	Columns []string
	Rows    [][]string
	Count   int
}

// buildSectionViews emits every declared section so the embedded runtime can
// surface any of them after a replace-data upload. Sections with no data are
// rendered as hidden shells: no nav entry is shown and no table markup exists
// until an upload gives them rows.
func buildSectionViews(data map[string][]core.Row) []sectionView {
	var views []sectionView
	for _, s := range Sections {
		view := sectionView{Section: s, Visible: s.Visible(data)}
		for _, table := range s.Tables {
			rows := data[table]
			if len(rows) == 0 {
				continue
			}
			view.TableViews = append(view.TableViews, buildTableView(table, rows))
		}
		views = append(views, view)
	}
	return views
}

func buildTableView(key string, rows []core.Row) tableView {
	columns := core.UnionColumns(rows)
	view := tableView{
		Key:     key,
		Label:   tableLabel(key),
		Columns: columns,
		Count:   len(rows),
	}
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = core.FormatValue(row[col])
		}
		view.Rows = append(view.Rows, cells)
	}
	return view
}

func tableLabel(key string) string {
	if info, ok := core.Get(key); ok {
		return info.Label
	}
	return key
}

func tableLabels() map[string]string {
	labels := make(map[string]string)
	for _, info := range core.All() {
		labels[info.Key] = info.Label
	}
	return labels
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": formatMoney,
	"pct": func(f float64) string {
		return strconv.FormatFloat(f, 'f', 1, 64) + "%"
	},
}).Parse(reportHTML))

// formatMoney renders an amount with a leading currency symbol, thousands
// separators, and two decimals; must stay in sync with fmtMoney in the
// embedded runtime.
func formatMoney(currency string, amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := currency + b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}
