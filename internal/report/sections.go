// Package report derives aggregate statistics from a snapshot and renders
// the self-contained interactive report document.
//
// Every statistic is a pure function of the snapshot's data mapping, called
// identically from the fresh-export path and the re-hydration path, so both
// paths always agree.
package report

import "github.com/karobarhq/karobar/internal/core"

// Section is one navigable unit of the report. Sections holds the single
// canonical grouping: both the navigation tabs and the content blocks are
// built from this list, so the two can never diverge.
type Section struct {
	ID     string
	Title  string
	Tables []string
}

// Sections lists every report section in display order. A section (and its
// nav tab) appears if and only if at least one of its tables has rows,
// whether the data came from a fresh export or a re-uploaded document.
var Sections = []Section{
	{ID: "overview", Title: "Financial Overview", Tables: []string{"sales", "expenses", "cash_transactions", "investments", "loans"}},
	{ID: "sales", Title: "Sales", Tables: []string{"sales"}},
	{ID: "expenses", Title: "Expenses", Tables: []string{"expenses"}},
	{ID: "inventory", Title: "Inventory", Tables: []string{"inventory_transactions", "goods_purchases", "clearances"}},
	{ID: "products", Title: "Products", Tables: []string{"products"}},
	{ID: "users", Title: "Users", Tables: []string{"users"}},
	{ID: "finance", Title: "Loans & Investments", Tables: []string{"loans", "loan_payments", "investments", "cash_transactions", "company_balance"}},
	{ID: "rewards", Title: "Rewards", Tables: []string{"rewards"}},
	{ID: "requests", Title: "Requests", Tables: []string{"requests", "product_request_items"}},
}

// Visible reports whether the section has at least one non-empty table in
// the data mapping. Empty tables produce no section and no nav entry.
func (s Section) Visible(data map[string][]core.Row) bool {
	for _, table := range s.Tables {
		if len(data[table]) > 0 {
			return true
		}
	}
	return false
}

