package report

import (
	"testing"
	"time"

	"github.com/karobarhq/karobar/internal/core"
)

var statsNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func TestComputeSales(t *testing.T) {
	rows := []core.Row{
		{"total_amount": 100.0, "created_at": "2026-08-10T09:00:00Z"},
		{"total_amount": 50.0, "created_at": "2026-08-10T15:00:00Z"},
		{"total_amount": 200.0, "created_at": "2026-07-20T09:00:00Z"},
		{"amount": 40.0, "created_at": "2026-06-01T09:00:00Z"}, // fallback amount key
	}

	s := computeSales(rows, statsNow)

	if s.Count != 4 {
		t.Errorf("Count = %d, want 4", s.Count)
	}
	if s.Revenue != 390 {
		t.Errorf("Revenue = %v, want 390", s.Revenue)
	}
	if s.Average != 97.5 {
		t.Errorf("Average = %v, want 97.5", s.Average)
	}
	if s.MonthCount != 2 || s.MonthRevenue != 150 {
		t.Errorf("month = %d/%v, want 2/150", s.MonthCount, s.MonthRevenue)
	}
	// (150 - 200) / 200 * 100
	if s.Growth != -25 {
		t.Errorf("Growth = %v, want -25", s.Growth)
	}
	if s.BestDay != "2026-07-20" || s.BestDayRevenue != 200 {
		t.Errorf("BestDay = %s/%v, want 2026-07-20/200", s.BestDay, s.BestDayRevenue)
	}
}

func TestComputeSalesGuards(t *testing.T) {
	// No sales at all: every ratio is 0, never NaN.
	s := computeSales(nil, statsNow)
	if s.Average != 0 || s.Growth != 0 {
		t.Errorf("empty sales Average/Growth = %v/%v, want 0/0", s.Average, s.Growth)
	}

	// Sales this month but none last month: growth guard kicks in.
	s = computeSales([]core.Row{
		{"total_amount": 100.0, "created_at": "2026-08-10T09:00:00Z"},
	}, statsNow)
	if s.Growth != 0 {
		t.Errorf("Growth with zero prior month = %v, want 0", s.Growth)
	}
}

func TestComputeSalesBestDayTie(t *testing.T) {
	rows := []core.Row{
		{"total_amount": 100.0, "created_at": "2026-08-12T09:00:00Z"},
		{"total_amount": 100.0, "created_at": "2026-08-10T09:00:00Z"},
	}

	s := computeSales(rows, statsNow)
	if s.BestDay != "2026-08-10" {
		t.Errorf("BestDay tie = %s, want earlier day 2026-08-10", s.BestDay)
	}
}

func TestComputeFinancial(t *testing.T) {
	data := map[string][]core.Row{
		"sales": {
			{"total_amount": 1000.0},
		},
		"cash_transactions": {
			{"amount": 500.0, "type": "income"},
			{"amount": 200.0, "type": "expense"},
			{"amount": 50.0, "type": "transfer"}, // neither in nor out
		},
		"expenses": {
			{"amount": 300.0},
		},
		"goods_purchases": {
			{"total_cost": 100.0},
		},
		"clearances": {
			{"total_value": 50.0},
		},
	}

	s := Compute(data, statsNow)

	if s.Financial.TotalRevenue != 1500 {
		t.Errorf("TotalRevenue = %v, want 1500", s.Financial.TotalRevenue)
	}
	if s.Financial.TotalCosts != 650 {
		t.Errorf("TotalCosts = %v, want 650", s.Financial.TotalCosts)
	}
	if s.Financial.NetIncome != 850 {
		t.Errorf("NetIncome = %v, want 850", s.Financial.NetIncome)
	}
	// 850 / 1500 * 100
	want := 850.0 / 1500.0 * 100
	if s.Financial.ProfitMargin != want {
		t.Errorf("ProfitMargin = %v, want %v", s.Financial.ProfitMargin, want)
	}
}

func TestComputeFinancialMarginGuard(t *testing.T) {
	s := Compute(map[string][]core.Row{
		"expenses": {{"amount": 100.0}},
	}, statsNow)

	if s.Financial.ProfitMargin != 0 {
		t.Errorf("ProfitMargin with zero revenue = %v, want 0", s.Financial.ProfitMargin)
	}
	if s.Financial.NetIncome != -100 {
		t.Errorf("NetIncome = %v, want -100", s.Financial.NetIncome)
	}
}

func TestComputeInventory(t *testing.T) {
	data := map[string][]core.Row{
		"inventory_transactions": {
			{"type": "in"},
			{"type": "in"},
			{"transaction_type": "out"},
			{"type": "adjustment"},
		},
		"goods_purchases": {{"total_cost": 250.0}, {"amount": 50.0}},
		"clearances":      {{"total_value": 75.0}},
	}

	inv := computeInventory(data)
	if inv.InCount != 2 || inv.OutCount != 1 {
		t.Errorf("in/out = %d/%d, want 2/1", inv.InCount, inv.OutCount)
	}
	if inv.PurchaseValue != 300 {
		t.Errorf("PurchaseValue = %v, want 300", inv.PurchaseValue)
	}
	if inv.ClearanceValue != 75 {
		t.Errorf("ClearanceValue = %v, want 75", inv.ClearanceValue)
	}
}

func TestComputeUsers(t *testing.T) {
	rows := []core.Row{
		{"name": "a", "role": "admin"},
		{"name": "b", "role": "staff", "is_active": false},
		{"name": "c", "role": "staff", "status": "inactive"},
		{"name": "d"},
	}

	u := computeUsers(rows)
	if u.Total != 4 {
		t.Errorf("Total = %d, want 4", u.Total)
	}
	if u.Active != 2 {
		t.Errorf("Active = %d, want 2", u.Active)
	}
	if u.ByRole["staff"] != 2 || u.ByRole["admin"] != 1 || u.ByRole["unknown"] != 1 {
		t.Errorf("ByRole = %v, want staff:2 admin:1 unknown:1", u.ByRole)
	}
}

func TestComputeExpenses(t *testing.T) {
	rows := []core.Row{
		{"amount": 100.0, "category": "rent", "created_at": "2026-08-05T00:00:00Z"},
		{"amount": 60.0, "category": "rent", "created_at": "2026-07-05T00:00:00Z"},
		{"amount": 40.0, "created_at": "2026-08-20T00:00:00Z"},
	}

	e := computeExpenses(rows, statsNow)
	if e.Total != 200 {
		t.Errorf("Total = %v, want 200", e.Total)
	}
	if e.MonthCount != 2 {
		t.Errorf("MonthCount = %d, want 2", e.MonthCount)
	}
	if e.ByCategory["rent"] != 160 || e.ByCategory["uncategorized"] != 40 {
		t.Errorf("ByCategory = %v, want rent:160 uncategorized:40", e.ByCategory)
	}
}

func TestComputeProducts(t *testing.T) {
	rows := []core.Row{
		{"stock": 10.0, "price": 5.0},
		{"quantity": 2.0, "selling_price": 20.0},
		{"name": "no stock info"},
	}

	p := computeProducts(rows)
	if p.Count != 3 {
		t.Errorf("Count = %d, want 3", p.Count)
	}
	if p.StockValue != 90 {
		t.Errorf("StockValue = %v, want 90", p.StockValue)
	}
}

func TestComputeFinance(t *testing.T) {
	data := map[string][]core.Row{
		"loans":         {{"amount": 1000.0}, {"principal": 500.0}},
		"loan_payments": {{"amount": 400.0}},
		"investments":   {{"amount": 2500.0}},
		"cash_transactions": {
			{"amount": 100.0, "type": "inflow"},
			{"amount": 30.0, "type": "outflow"},
		},
	}

	f := computeFinance(data)
	if f.LoanPrincipal != 1500 || f.LoanRepaid != 400 || f.LoanOutstanding != 1100 {
		t.Errorf("loans = %v/%v/%v, want 1500/400/1100",
			f.LoanPrincipal, f.LoanRepaid, f.LoanOutstanding)
	}
	if f.InvestmentTotal != 2500 {
		t.Errorf("InvestmentTotal = %v, want 2500", f.InvestmentTotal)
	}
	if f.CashIn != 100 || f.CashOut != 30 {
		t.Errorf("cash = %v/%v, want 100/30", f.CashIn, f.CashOut)
	}
}

func TestComputeRewards(t *testing.T) {
	rows := []core.Row{
		{"points": 100.0},
		{"points": 40.0, "type": "redeemed"},
		{"amount": 10.0, "status": "redeemed"},
	}

	r := computeRewards(rows)
	if r.PointsIssued != 100 {
		t.Errorf("PointsIssued = %v, want 100", r.PointsIssued)
	}
	if r.PointsRedeemed != 50 {
		t.Errorf("PointsRedeemed = %v, want 50", r.PointsRedeemed)
	}
}

func TestComputeRequests(t *testing.T) {
	data := map[string][]core.Row{
		"requests": {
			{"status": "pending"},
			{"status": "fulfilled"},
		},
		"product_request_items": {{}, {}, {}},
	}

	r := computeRequests(data)
	if r.Count != 2 || r.Pending != 1 || r.Items != 3 {
		t.Errorf("requests = %d/%d/%d, want 2/1/3", r.Count, r.Pending, r.Items)
	}
}

func TestGuardDiv(t *testing.T) {
	if got := guardDiv(10, 0); got != 0 {
		t.Errorf("guardDiv(10, 0) = %v, want 0", got)
	}
	if got := guardDiv(10, 4); got != 2.5 {
		t.Errorf("guardDiv(10, 4) = %v, want 2.5", got)
	}
}
