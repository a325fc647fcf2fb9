package report

import (
	"time"

	"github.com/karobarhq/karobar/internal/core"
)

// stats.go computes every derived KPI as a pure reduction over the data
// mapping. Nothing here is persisted; statistics are recomputed on every
// render and missing numeric/date fields contribute zero.

// Financial is the aggregate overview across the revenue-relevant tables.
type Financial struct {
	TotalRevenue float64 `json:"totalRevenue"`
	TotalCosts   float64 `json:"totalCosts"`
	NetIncome    float64 `json:"netIncome"`
	ProfitMargin float64 `json:"profitMargin"` // percent; 0 when revenue is 0
}

// Sales summarizes the sales table.
type Sales struct {
	Count          int     `json:"count"`
	Revenue        float64 `json:"revenue"`
	Average        float64 `json:"average"`
	MonthCount     int     `json:"monthCount"`
	MonthRevenue   float64 `json:"monthRevenue"`
	Growth         float64 `json:"growth"` // month-over-month percent; 0 when last month is 0
	BestDay        string  `json:"bestDay"`
	BestDayRevenue float64 `json:"bestDayRevenue"`
}

// Inventory summarizes stock movement and acquisition value.
type Inventory struct {
	InCount        int     `json:"inCount"`
	OutCount       int     `json:"outCount"`
	PurchaseValue  float64 `json:"purchaseValue"`
	ClearanceValue float64 `json:"clearanceValue"`
}

// Users summarizes the user base.
type Users struct {
	Total  int            `json:"total"`
	Active int            `json:"active"`
	ByRole map[string]int `json:"byRole"`
}

// Expenses summarizes the expenses table.
type Expenses struct {
	Count      int                `json:"count"`
	Total      float64            `json:"total"`
	Average    float64            `json:"average"`
	MonthCount int                `json:"monthCount"`
	ByCategory map[string]float64 `json:"byCategory"`
}

// Products summarizes the catalog.
type Products struct {
	Count      int     `json:"count"`
	StockValue float64 `json:"stockValue"`
}

// Finance summarizes loans, investments, and cash movement.
type Finance struct {
	LoanPrincipal   float64 `json:"loanPrincipal"`
	LoanRepaid      float64 `json:"loanRepaid"`
	LoanOutstanding float64 `json:"loanOutstanding"`
	InvestmentTotal float64 `json:"investmentTotal"`
	CashIn          float64 `json:"cashIn"`
	CashOut         float64 `json:"cashOut"`
}

// Rewards summarizes the rewards ledger.
type Rewards struct {
	Count          int     `json:"count"`
	PointsIssued   float64 `json:"pointsIssued"`
	PointsRedeemed float64 `json:"pointsRedeemed"`
}

// Requests summarizes product requests.
type Requests struct {
	Count   int `json:"count"`
	Pending int `json:"pending"`
	Items   int `json:"items"`
}

// Stats bundles every per-domain aggregate for one render.
type Stats struct {
	Financial Financial `json:"financial"`
	Sales     Sales     `json:"sales"`
	Inventory Inventory `json:"inventory"`
	Users     Users     `json:"users"`
	Expenses  Expenses  `json:"expenses"`
	Products  Products  `json:"products"`
	Finance   Finance   `json:"finance"`
	Rewards   Rewards   `json:"rewards"`
	Requests  Requests  `json:"requests"`
}

// Compute derives every statistic from the data mapping. now anchors the
// "current calendar month" windows; callers pass time.Now() for live
// renders and may pin it in tests.
func Compute(data map[string][]core.Row, now time.Time) *Stats {
	s := &Stats{
		Sales:     computeSales(data["sales"], now),
		Inventory: computeInventory(data),
		Users:     computeUsers(data["users"]),
		Expenses:  computeExpenses(data["expenses"], now),
		Products:  computeProducts(data["products"]),
		Finance:   computeFinance(data),
		Rewards:   computeRewards(data["rewards"]),
		Requests:  computeRequests(data),
	}
	s.Financial = computeFinancial(s)
	return s
}

// computeFinancial folds the per-domain aggregates into the overview.
//
// Revenue = sales revenue + cash inflow typed as income.
// Costs = expenses + cash outflow + inventory purchase/clearance values.
func computeFinancial(s *Stats) Financial {
	f := Financial{
		TotalRevenue: s.Sales.Revenue + s.Finance.CashIn,
		TotalCosts:   s.Expenses.Total + s.Finance.CashOut + s.Inventory.PurchaseValue + s.Inventory.ClearanceValue,
	}
	f.NetIncome = f.TotalRevenue - f.TotalCosts
	f.ProfitMargin = guardDiv(f.NetIncome, f.TotalRevenue) * 100
	return f
}

func computeSales(rows []core.Row, now time.Time) Sales {
	s := Sales{Count: len(rows)}

	thisMonth := now.Format("2006-01")
	lastMonth := now.AddDate(0, -1, 0).Format("2006-01")
	var lastMonthRevenue float64
	byDay := make(map[string]float64)

	for _, row := range rows {
		amount := row.Num("total_amount", "total", "amount")
		s.Revenue += amount

		t := row.Time("created_at", "sale_date", "date")
		if t.IsZero() {
			continue
		}
		switch t.Format("2006-01") {
		case thisMonth:
			s.MonthCount++
			s.MonthRevenue += amount
		case lastMonth:
			lastMonthRevenue += amount
		}
		byDay[t.Format("2006-01-02")] += amount
	}

	s.Average = guardDiv(s.Revenue, float64(s.Count))
	s.Growth = guardDiv(s.MonthRevenue-lastMonthRevenue, lastMonthRevenue) * 100

	for day, revenue := range byDay {
		if revenue > s.BestDayRevenue || (revenue == s.BestDayRevenue && day < s.BestDay) {
			s.BestDay = day
			s.BestDayRevenue = revenue
		}
	}
	return s
}

func computeInventory(data map[string][]core.Row) Inventory {
	var inv Inventory
	for _, row := range data["inventory_transactions"] {
		switch row.Str("type", "transaction_type") {
		case "in":
			inv.InCount++
		case "out":
			inv.OutCount++
		}
	}
	for _, row := range data["goods_purchases"] {
		inv.PurchaseValue += row.Num("total_cost", "total_amount", "amount")
	}
	for _, row := range data["clearances"] {
		inv.ClearanceValue += row.Num("total_value", "value", "amount")
	}
	return inv
}

func computeUsers(rows []core.Row) Users {
	u := Users{Total: len(rows), ByRole: make(map[string]int)}
	for _, row := range rows {
		// Active unless explicitly flagged inactive.
		if row.Bool(true, "is_active", "active") && row.Str("status") != "inactive" {
			u.Active++
		}
		role := row.Str("role")
		if role == "" {
			role = "unknown"
		}
		u.ByRole[role]++
	}
	return u
}

func computeExpenses(rows []core.Row, now time.Time) Expenses {
	e := Expenses{Count: len(rows), ByCategory: make(map[string]float64)}
	thisMonth := now.Format("2006-01")

	for _, row := range rows {
		amount := row.Num("amount", "total")
		e.Total += amount

		category := row.Str("category")
		if category == "" {
			category = "uncategorized"
		}
		e.ByCategory[category] += amount

		if t := row.Time("created_at", "expense_date", "date"); !t.IsZero() && t.Format("2006-01") == thisMonth {
			e.MonthCount++
		}
	}
	e.Average = guardDiv(e.Total, float64(e.Count))
	return e
}

func computeProducts(rows []core.Row) Products {
	p := Products{Count: len(rows)}
	for _, row := range rows {
		p.StockValue += row.Num("stock", "quantity") * row.Num("price", "selling_price")
	}
	return p
}

func computeFinance(data map[string][]core.Row) Finance {
	var f Finance
	for _, row := range data["loans"] {
		f.LoanPrincipal += row.Num("amount", "principal")
	}
	for _, row := range data["loan_payments"] {
		f.LoanRepaid += row.Num("amount")
	}
	f.LoanOutstanding = f.LoanPrincipal - f.LoanRepaid

	for _, row := range data["investments"] {
		f.InvestmentTotal += row.Num("amount")
	}
	for _, row := range data["cash_transactions"] {
		amount := row.Num("amount")
		switch row.Str("type", "transaction_type") {
		case "income", "in", "inflow":
			f.CashIn += amount
		case "expense", "out", "outflow":
			f.CashOut += amount
		}
	}
	return f
}

func computeRewards(rows []core.Row) Rewards {
	r := Rewards{Count: len(rows)}
	for _, row := range rows {
		points := row.Num("points", "amount")
		if row.Str("type", "status") == "redeemed" {
			r.PointsRedeemed += points
		} else {
			r.PointsIssued += points
		}
	}
	return r
}

func computeRequests(data map[string][]core.Row) Requests {
	r := Requests{
		Count: len(data["requests"]),
		Items: len(data["product_request_items"]),
	}
	for _, row := range data["requests"] {
		if row.Str("status") == "pending" {
			r.Pending++
		}
	}
	return r
}

// guardDiv divides, returning 0 when the denominator is 0 so ratios never
// propagate NaN or Infinity into rendered output.
func guardDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
