package report

import (
	"testing"

	"github.com/karobarhq/karobar/internal/core"
)

func TestSectionVisible(t *testing.T) {
	data := map[string][]core.Row{
		"sales":     {{"id": 1.0}},
		"users":     {},
		"clearances": {{"id": 1.0}},
	}

	tests := []struct {
		id   string
		want bool
	}{
		{"overview", true},  // sales has rows
		{"sales", true},
		{"users", false},    // present but empty
		{"inventory", true}, // one of three tables has rows
		{"finance", false},
		{"rewards", false},
	}

	byID := make(map[string]Section)
	for _, s := range Sections {
		byID[s.ID] = s
	}

	for _, tt := range tests {
		s, ok := byID[tt.id]
		if !ok {
			t.Fatalf("section %q not declared", tt.id)
		}
		if got := s.Visible(data); got != tt.want {
			t.Errorf("section %q Visible = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestBuildSectionViewsVisibility(t *testing.T) {
	data := map[string][]core.Row{
		"requests": {{"id": 1.0}},
		"sales":    {{"id": 1.0}},
	}

	views := buildSectionViews(data)
	if len(views) != len(Sections) {
		t.Fatalf("views = %d, want a shell for all %d sections", len(views), len(Sections))
	}

	visible := make(map[string]bool)
	for i, v := range views {
		if v.ID != Sections[i].ID {
			t.Errorf("views[%d] = %q, want declaration order %q", i, v.ID, Sections[i].ID)
		}
		visible[v.ID] = v.Visible
		// Hidden shells carry no table markup until an upload fills them.
		if !v.Visible && len(v.TableViews) != 0 {
			t.Errorf("hidden section %q has %d table views", v.ID, len(v.TableViews))
		}
	}

	// overview and sales (via sales rows) plus requests are visible.
	for id, want := range map[string]bool{
		"overview": true, "sales": true, "requests": true,
		"expenses": false, "inventory": false, "users": false,
	} {
		if visible[id] != want {
			t.Errorf("section %q Visible = %v, want %v", id, visible[id], want)
		}
	}
}

func TestSectionsCoverEveryReportableTable(t *testing.T) {
	covered := make(map[string]bool)
	for _, s := range Sections {
		for _, table := range s.Tables {
			covered[table] = true
		}
	}

	for _, table := range []string{
		"sales", "expenses", "inventory_transactions", "goods_purchases",
		"clearances", "products", "users", "loans", "loan_payments",
		"investments", "company_balance", "rewards", "requests",
		"product_request_items", "cash_transactions",
	} {
		if !covered[table] {
			t.Errorf("table %q not covered by any section", table)
		}
	}
}
