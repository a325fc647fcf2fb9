// Package tables registers the fixed set of Karobar domain tables.
// Import for side effects from main:
//
//	_ "github.com/karobarhq/karobar/internal/core/tables"
package tables

import "github.com/karobarhq/karobar/internal/core"

func init() {
	for _, info := range []core.TableInfo{
		{Key: "products", Group: "catalog", Label: "Products", DefaultCSV: true},

		{Key: "sales", Group: "sales", Label: "Sales", JoinUsers: true, DefaultCSV: true},
		{Key: "requests", Group: "sales", Label: "Product Requests"},
		{Key: "product_request_items", Group: "sales", Label: "Request Items"},

		{Key: "cash_transactions", Group: "finance", Label: "Cash Transactions"},
		{Key: "company_balance", Group: "finance", Label: "Company Balance"},
		{Key: "investments", Group: "finance", Label: "Investments"},
		{Key: "loans", Group: "finance", Label: "Loans"},
		{Key: "loan_payments", Group: "finance", Label: "Loan Payments"},

		{Key: "inventory_transactions", Group: "inventory", Label: "Inventory Transactions", DefaultCSV: true},
		{Key: "goods_purchases", Group: "inventory", Label: "Goods Purchases"},
		{Key: "clearances", Group: "inventory", Label: "Clearances"},

		{Key: "users", Group: "people", Label: "Users", DefaultCSV: true},
		{Key: "rewards", Group: "people", Label: "Rewards"},

		{Key: "expenses", Group: "expenses", Label: "Expenses", DefaultCSV: true},

		{Key: "notifications", Group: "system", Label: "Notifications"},
		{Key: "settings", Group: "system", Label: "Settings"},
	} {
		core.Register(info)
	}
}
