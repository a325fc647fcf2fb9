package report

// reportHTML is the interactive report document. It embeds the snapshot as
// inline JSON plus a small script runtime (tabs, per-table row filter,
// replace-data upload), so the artifact works offline in any browser.
//
// The runtime's stat formulas mirror Compute in stats.go; the two must stay
// in sync so an offline replace-data upload shows the same numbers as a
// server-side re-hydration.
const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Karobar Data Report</title>
<style>
:root { --bg:#f4f5f7; --panel:#ffffff; --ink:#1f2733; --muted:#6b7280; --accent:#2563eb; --line:#e5e7eb; }
* { box-sizing:border-box; }
body { margin:0; font-family:-apple-system,Segoe UI,Roboto,Helvetica,Arial,sans-serif; background:var(--bg); color:var(--ink); }
header { background:var(--panel); border-bottom:1px solid var(--line); padding:16px 24px; }
header h1 { margin:0 0 4px; font-size:20px; }
.meta { color:var(--muted); font-size:13px; }
.meta b { color:var(--ink); font-weight:600; }
.upload { margin-top:10px; font-size:13px; }
.upload input { font-size:13px; }
#upload-error { color:#b91c1c; font-size:13px; margin-top:6px; display:none; }
nav { display:flex; flex-wrap:wrap; gap:4px; padding:10px 24px 0; background:var(--panel); border-bottom:1px solid var(--line); }
nav button { border:none; background:none; padding:8px 14px; font-size:13px; color:var(--muted); cursor:pointer; border-bottom:2px solid transparent; }
nav button.active { color:var(--accent); border-bottom-color:var(--accent); }
main { padding:24px; }
section { display:none; }
section.active { display:block; }
.cards { display:grid; grid-template-columns:repeat(auto-fill,minmax(180px,1fr)); gap:12px; margin-bottom:20px; }
.card { background:var(--panel); border:1px solid var(--line); border-radius:8px; padding:14px; }
.card-label { font-size:12px; color:var(--muted); text-transform:uppercase; letter-spacing:.03em; }
.card-value { font-size:20px; font-weight:600; margin-top:4px; }
.tablewrap { background:var(--panel); border:1px solid var(--line); border-radius:8px; padding:14px; margin-bottom:20px; overflow-x:auto; }
.tablewrap h3 { margin:0 0 8px; font-size:15px; }
.rowcount { color:var(--muted); font-weight:400; font-size:13px; }
.search { width:260px; max-width:100%; padding:6px 10px; margin-bottom:10px; border:1px solid var(--line); border-radius:6px; font-size:13px; }
table { border-collapse:collapse; width:100%; font-size:13px; }
th, td { text-align:left; padding:6px 10px; border-bottom:1px solid var(--line); white-space:nowrap; max-width:320px; overflow:hidden; text-overflow:ellipsis; }
th { color:var(--muted); font-weight:600; position:sticky; top:0; background:var(--panel); }
.breakdown { font-size:13px; color:var(--muted); margin:-8px 0 20px; }
</style>
</head>
<body>
<header>
  <h1>Karobar Data Report</h1>
  <div class="meta">
    Generated <b data-meta="exportedAt">{{.Meta.ExportedAt}}</b>
    · version <b data-meta="version">{{.Meta.Version}}</b>
    · <b data-meta="tableCount">{{.Meta.TableCount}}</b> tables
    · <b data-meta="totalRecords">{{.Meta.TotalRecords}}</b> records
  </div>
  <div class="upload">
    Load a previously exported backup or report:
    <input type="file" id="upload-input" accept=".json,.html">
  </div>
  <div id="upload-error"></div>
</header>
<nav id="tabs">
{{- range .Sections}}
  <button data-tab="{{.ID}}"{{if not .Visible}} hidden{{end}}>{{.Title}}</button>
{{- end}}
</nav>
<main>
{{- range .Sections}}
<section data-section="{{.ID}}">
{{- if eq .ID "overview"}}
  <div class="cards">
    <div class="card"><div class="card-label">Total Revenue</div><div class="card-value" data-stat="financial.totalRevenue">{{money $.Currency $.Stats.Financial.TotalRevenue}}</div></div>
    <div class="card"><div class="card-label">Total Costs</div><div class="card-value" data-stat="financial.totalCosts">{{money $.Currency $.Stats.Financial.TotalCosts}}</div></div>
    <div class="card"><div class="card-label">Net Income</div><div class="card-value" data-stat="financial.netIncome">{{money $.Currency $.Stats.Financial.NetIncome}}</div></div>
    <div class="card"><div class="card-label">Profit Margin</div><div class="card-value" data-stat="financial.profitMargin">{{pct $.Stats.Financial.ProfitMargin}}</div></div>
  </div>
{{- else if eq .ID "sales"}}
  <div class="cards">
    <div class="card"><div class="card-label">Sales</div><div class="card-value" data-stat="sales.count">{{$.Stats.Sales.Count}}</div></div>
    <div class="card"><div class="card-label">Revenue</div><div class="card-value" data-stat="sales.revenue">{{money $.Currency $.Stats.Sales.Revenue}}</div></div>
    <div class="card"><div class="card-label">Average Sale</div><div class="card-value" data-stat="sales.average">{{money $.Currency $.Stats.Sales.Average}}</div></div>
    <div class="card"><div class="card-label">This Month</div><div class="card-value" data-stat="sales.monthCount">{{$.Stats.Sales.MonthCount}}</div></div>
    <div class="card"><div class="card-label">Month Revenue</div><div class="card-value" data-stat="sales.monthRevenue">{{money $.Currency $.Stats.Sales.MonthRevenue}}</div></div>
    <div class="card"><div class="card-label">MoM Growth</div><div class="card-value" data-stat="sales.growth">{{pct $.Stats.Sales.Growth}}</div></div>
    <div class="card"><div class="card-label">Best Day</div><div class="card-value" data-stat="sales.bestDay">{{if $.Stats.Sales.BestDay}}{{$.Stats.Sales.BestDay}}{{else}}N/A{{end}}</div></div>
  </div>
{{- else if eq .ID "expenses"}}
  <div class="cards">
    <div class="card"><div class="card-label">Expenses</div><div class="card-value" data-stat="expenses.count">{{$.Stats.Expenses.Count}}</div></div>
    <div class="card"><div class="card-label">Total</div><div class="card-value" data-stat="expenses.total">{{money $.Currency $.Stats.Expenses.Total}}</div></div>
    <div class="card"><div class="card-label">Average</div><div class="card-value" data-stat="expenses.average">{{money $.Currency $.Stats.Expenses.Average}}</div></div>
    <div class="card"><div class="card-label">This Month</div><div class="card-value" data-stat="expenses.monthCount">{{$.Stats.Expenses.MonthCount}}</div></div>
  </div>
  <div class="breakdown" data-breakdown="expenses.byCategory">
    {{- range $cat, $amt := $.Stats.Expenses.ByCategory}}
    <span>{{$cat}}: {{money $.Currency $amt}}&nbsp;&nbsp;</span>
    {{- end}}
  </div>
{{- else if eq .ID "inventory"}}
  <div class="cards">
    <div class="card"><div class="card-label">Inbound</div><div class="card-value" data-stat="inventory.inCount">{{$.Stats.Inventory.InCount}}</div></div>
    <div class="card"><div class="card-label">Outbound</div><div class="card-value" data-stat="inventory.outCount">{{$.Stats.Inventory.OutCount}}</div></div>
    <div class="card"><div class="card-label">Purchase Value</div><div class="card-value" data-stat="inventory.purchaseValue">{{money $.Currency $.Stats.Inventory.PurchaseValue}}</div></div>
    <div class="card"><div class="card-label">Clearance Value</div><div class="card-value" data-stat="inventory.clearanceValue">{{money $.Currency $.Stats.Inventory.ClearanceValue}}</div></div>
  </div>
{{- else if eq .ID "products"}}
  <div class="cards">
    <div class="card"><div class="card-label">Products</div><div class="card-value" data-stat="products.count">{{$.Stats.Products.Count}}</div></div>
    <div class="card"><div class="card-label">Stock Value</div><div class="card-value" data-stat="products.stockValue">{{money $.Currency $.Stats.Products.StockValue}}</div></div>
  </div>
{{- else if eq .ID "users"}}
  <div class="cards">
    <div class="card"><div class="card-label">Users</div><div class="card-value" data-stat="users.total">{{$.Stats.Users.Total}}</div></div>
    <div class="card"><div class="card-label">Active</div><div class="card-value" data-stat="users.active">{{$.Stats.Users.Active}}</div></div>
  </div>
  <div class="breakdown" data-breakdown="users.byRole">
    {{- range $role, $n := $.Stats.Users.ByRole}}
    <span>{{$role}}: {{$n}}&nbsp;&nbsp;</span>
    {{- end}}
  </div>
{{- else if eq .ID "finance"}}
  <div class="cards">
    <div class="card"><div class="card-label">Loan Principal</div><div class="card-value" data-stat="finance.loanPrincipal">{{money $.Currency $.Stats.Finance.LoanPrincipal}}</div></div>
    <div class="card"><div class="card-label">Repaid</div><div class="card-value" data-stat="finance.loanRepaid">{{money $.Currency $.Stats.Finance.LoanRepaid}}</div></div>
    <div class="card"><div class="card-label">Outstanding</div><div class="card-value" data-stat="finance.loanOutstanding">{{money $.Currency $.Stats.Finance.LoanOutstanding}}</div></div>
    <div class="card"><div class="card-label">Invested</div><div class="card-value" data-stat="finance.investmentTotal">{{money $.Currency $.Stats.Finance.InvestmentTotal}}</div></div>
    <div class="card"><div class="card-label">Cash In</div><div class="card-value" data-stat="finance.cashIn">{{money $.Currency $.Stats.Finance.CashIn}}</div></div>
    <div class="card"><div class="card-label">Cash Out</div><div class="card-value" data-stat="finance.cashOut">{{money $.Currency $.Stats.Finance.CashOut}}</div></div>
  </div>
{{- else if eq .ID "rewards"}}
  <div class="cards">
    <div class="card"><div class="card-label">Rewards</div><div class="card-value" data-stat="rewards.count">{{$.Stats.Rewards.Count}}</div></div>
    <div class="card"><div class="card-label">Points Issued</div><div class="card-value" data-stat="rewards.pointsIssued">{{$.Stats.Rewards.PointsIssued}}</div></div>
    <div class="card"><div class="card-label">Points Redeemed</div><div class="card-value" data-stat="rewards.pointsRedeemed">{{$.Stats.Rewards.PointsRedeemed}}</div></div>
  </div>
{{- else if eq .ID "requests"}}
  <div class="cards">
    <div class="card"><div class="card-label">Requests</div><div class="card-value" data-stat="requests.count">{{$.Stats.Requests.Count}}</div></div>
    <div class="card"><div class="card-label">Pending</div><div class="card-value" data-stat="requests.pending">{{$.Stats.Requests.Pending}}</div></div>
    <div class="card"><div class="card-label">Line Items</div><div class="card-value" data-stat="requests.items">{{$.Stats.Requests.Items}}</div></div>
  </div>
{{- end}}
  <div class="tables">
{{- range .TableViews}}
    <div class="tablewrap" data-table="{{.Key}}">
      <h3>{{.Label}} <span class="rowcount">{{.Count}} rows</span></h3>
      <input class="search" type="text" placeholder="Filter rows...">
      <table>
        <thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
        <tbody>
{{- range .Rows}}
          <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
        </tbody>
      </table>
    </div>
{{- end}}
  </div>
</section>
{{- end}}
</main>
<script type="application/json" id="karobar-config">{{.ConfigJSON}}</script>
<script type="application/json" id="karobar-snapshot">{{.SnapshotJSON}}</script>
<script>
(function () {
  "use strict";

  var config = JSON.parse(document.getElementById("karobar-config").textContent);

  function fmtMoney(n) {
    var sign = n < 0 ? "-" : "";
    return sign + config.currency + Math.abs(n).toLocaleString("en-US", {
      minimumFractionDigits: 2, maximumFractionDigits: 2
    });
  }
  function fmtPct(n) { return n.toFixed(1) + "%"; }

  // --- tabs -----------------------------------------------------------
  var nav = document.getElementById("tabs");
  function activate(id) {
    nav.querySelectorAll("button").forEach(function (b) {
      b.classList.toggle("active", b.dataset.tab === id);
    });
    document.querySelectorAll("section[data-section]").forEach(function (s) {
      s.classList.toggle("active", s.dataset.section === id);
    });
  }
  nav.addEventListener("click", function (e) {
    if (e.target.dataset.tab) activate(e.target.dataset.tab);
  });
  var first = nav.querySelector("button:not([hidden])");
  if (first) activate(first.dataset.tab);

  // --- row filter -----------------------------------------------------
  // A row matches if the query is a case-insensitive substring of any cell.
  document.addEventListener("input", function (e) {
    if (!e.target.classList.contains("search")) return;
    var q = e.target.value.toLowerCase();
    var wrap = e.target.closest(".tablewrap");
    wrap.querySelectorAll("tbody tr").forEach(function (tr) {
      tr.style.display = tr.textContent.toLowerCase().indexOf(q) >= 0 ? "" : "none";
    });
  });

  // --- stats (mirrors the server-side derivations) ---------------------
  function num(row, keys) {
    for (var i = 0; i < keys.length; i++) {
      var v = row[keys[i]];
      if (v === undefined || v === null) continue;
      if (typeof v === "number") return v;
      if (typeof v === "string") {
        var f = parseFloat(v.replace(/^[$₹€£\s]+/, "").replace(/,/g, ""));
        if (!isNaN(f)) return f;
      }
    }
    return 0;
  }
  function str(row, keys) {
    for (var i = 0; i < keys.length; i++) {
      if (typeof row[keys[i]] === "string") return row[keys[i]];
    }
    return "";
  }
  function boolVal(row, keys, def) {
    for (var i = 0; i < keys.length; i++) {
      var v = row[keys[i]];
      if (typeof v === "boolean") return v;
      if (v === "true" || v === "1") return true;
      if (v === "false" || v === "0") return false;
    }
    return def;
  }
  function rowDate(row, keys) {
    var s = str(row, keys);
    if (!s) return null;
    var d = new Date(s);
    return isNaN(d.getTime()) ? null : d;
  }
  function monthKey(d) { return d.getFullYear() + "-" + ("0" + (d.getMonth() + 1)).slice(-2); }
  function dayKey(d) { return monthKey(d) + "-" + ("0" + d.getDate()).slice(-2); }
  function div(a, b) { return b === 0 ? 0 : a / b; }

  function computeStats(data) {
    var rows = function (t) { return data[t] || []; };
    var now = new Date();
    var lastMonthDate = new Date(now.getFullYear(), now.getMonth() - 1, 1);
    var thisMonth = monthKey(now), lastMonth = monthKey(lastMonthDate);

    var sales = { count: rows("sales").length, revenue: 0, average: 0, monthCount: 0, monthRevenue: 0, growth: 0, bestDay: "", bestDayRevenue: 0 };
    var lastMonthRevenue = 0, byDay = {};
    rows("sales").forEach(function (r) {
      var amt = num(r, ["total_amount", "total", "amount"]);
      sales.revenue += amt;
      var d = rowDate(r, ["created_at", "sale_date", "date"]);
      if (!d) return;
      var mk = monthKey(d);
      if (mk === thisMonth) { sales.monthCount++; sales.monthRevenue += amt; }
      else if (mk === lastMonth) { lastMonthRevenue += amt; }
      var dk = dayKey(d);
      byDay[dk] = (byDay[dk] || 0) + amt;
    });
    sales.average = div(sales.revenue, sales.count);
    sales.growth = div(sales.monthRevenue - lastMonthRevenue, lastMonthRevenue) * 100;
    Object.keys(byDay).sort().forEach(function (dk) {
      if (byDay[dk] > sales.bestDayRevenue) { sales.bestDay = dk; sales.bestDayRevenue = byDay[dk]; }
    });

    var expenses = { count: rows("expenses").length, total: 0, average: 0, monthCount: 0, byCategory: {} };
    rows("expenses").forEach(function (r) {
      var amt = num(r, ["amount", "total"]);
      expenses.total += amt;
      var cat = str(r, ["category"]) || "uncategorized";
      expenses.byCategory[cat] = (expenses.byCategory[cat] || 0) + amt;
      var d = rowDate(r, ["created_at", "expense_date", "date"]);
      if (d && monthKey(d) === thisMonth) expenses.monthCount++;
    });
    expenses.average = div(expenses.total, expenses.count);

    var inventory = { inCount: 0, outCount: 0, purchaseValue: 0, clearanceValue: 0 };
    rows("inventory_transactions").forEach(function (r) {
      var t = str(r, ["type", "transaction_type"]);
      if (t === "in") inventory.inCount++;
      else if (t === "out") inventory.outCount++;
    });
    rows("goods_purchases").forEach(function (r) {
      inventory.purchaseValue += num(r, ["total_cost", "total_amount", "amount"]);
    });
    rows("clearances").forEach(function (r) {
      inventory.clearanceValue += num(r, ["total_value", "value", "amount"]);
    });

    var users = { total: rows("users").length, active: 0, byRole: {} };
    rows("users").forEach(function (r) {
      var active = boolVal(r, ["is_active", "active"], true) && str(r, ["status"]) !== "inactive";
      if (active) users.active++;
      var role = str(r, ["role"]) || "unknown";
      users.byRole[role] = (users.byRole[role] || 0) + 1;
    });

    var products = { count: rows("products").length, stockValue: 0 };
    rows("products").forEach(function (r) {
      products.stockValue += num(r, ["stock", "quantity"]) * num(r, ["price", "selling_price"]);
    });

    var finance = { loanPrincipal: 0, loanRepaid: 0, loanOutstanding: 0, investmentTotal: 0, cashIn: 0, cashOut: 0 };
    rows("loans").forEach(function (r) { finance.loanPrincipal += num(r, ["amount", "principal"]); });
    rows("loan_payments").forEach(function (r) { finance.loanRepaid += num(r, ["amount"]); });
    finance.loanOutstanding = finance.loanPrincipal - finance.loanRepaid;
    rows("investments").forEach(function (r) { finance.investmentTotal += num(r, ["amount"]); });
    rows("cash_transactions").forEach(function (r) {
      var t = str(r, ["type", "transaction_type"]), amt = num(r, ["amount"]);
      if (t === "income" || t === "in" || t === "inflow") finance.cashIn += amt;
      else if (t === "expense" || t === "out" || t === "outflow") finance.cashOut += amt;
    });

    var rewards = { count: rows("rewards").length, pointsIssued: 0, pointsRedeemed: 0 };
    rows("rewards").forEach(function (r) {
      var pts = num(r, ["points", "amount"]);
      if (str(r, ["type", "status"]) === "redeemed") rewards.pointsRedeemed += pts;
      else rewards.pointsIssued += pts;
    });

    var requests = { count: rows("requests").length, pending: 0, items: rows("product_request_items").length };
    rows("requests").forEach(function (r) {
      if (str(r, ["status"]) === "pending") requests.pending++;
    });

    var financial = {
      totalRevenue: sales.revenue + finance.cashIn,
      totalCosts: expenses.total + finance.cashOut + inventory.purchaseValue + inventory.clearanceValue
    };
    financial.netIncome = financial.totalRevenue - financial.totalCosts;
    financial.profitMargin = div(financial.netIncome, financial.totalRevenue) * 100;

    return { financial: financial, sales: sales, expenses: expenses, inventory: inventory,
             users: users, products: products, finance: finance, rewards: rewards, requests: requests };
  }

  // --- replace-data upload ---------------------------------------------
  function extractSnapshot(text) {
    var trimmed = text.replace(/^\uFEFF/, "").trim();
    if (trimmed.charAt(0) === "{") return JSON.parse(trimmed);
    var m = trimmed.match(/<script[^>]*id="karobar-snapshot"[^>]*>([\s\S]*?)<\/script>/);
    if (!m) throw new Error("no embedded snapshot found in document");
    return JSON.parse(m[1]);
  }

  // Cosmetic but load-bearing: documents exported before the currency
  // switch carry dollar-denominated display strings.
  function rewriteCurrency(v) {
    if (typeof v === "string") {
      return v.replace(/\$\s?(\d[\d,]*(?:\.\d+)?)/g, config.currency + "$1");
    }
    if (Array.isArray(v)) return v.map(rewriteCurrency);
    if (v && typeof v === "object") {
      var out = {};
      Object.keys(v).forEach(function (k) { out[k] = rewriteCurrency(v[k]); });
      return out;
    }
    return v;
  }

  function setStat(path, text) {
    document.querySelectorAll('[data-stat="' + path + '"]').forEach(function (el) {
      el.textContent = text;
    });
  }

  function cellText(v) {
    if (v === undefined || v === null) return "";
    if (typeof v === "object") return JSON.stringify(v);
    return String(v);
  }

  function buildTable(key, tableRows) {
    var cols = [], seen = {};
    tableRows.forEach(function (r) {
      Object.keys(r).sort().forEach(function (k) {
        if (!seen[k]) { seen[k] = true; cols.push(k); }
      });
    });

    var wrap = document.createElement("div");
    wrap.className = "tablewrap";
    wrap.dataset.table = key;

    var h3 = document.createElement("h3");
    h3.textContent = (config.labels[key] || key) + " ";
    var count = document.createElement("span");
    count.className = "rowcount";
    count.textContent = tableRows.length + " rows";
    h3.appendChild(count);
    wrap.appendChild(h3);

    var input = document.createElement("input");
    input.className = "search";
    input.type = "text";
    input.placeholder = "Filter rows...";
    wrap.appendChild(input);

    var table = document.createElement("table");
    var thead = document.createElement("thead");
    var hr = document.createElement("tr");
    cols.forEach(function (c) {
      var th = document.createElement("th");
      th.textContent = c;
      hr.appendChild(th);
    });
    thead.appendChild(hr);
    table.appendChild(thead);

    var tbody = document.createElement("tbody");
    tableRows.forEach(function (r) {
      var tr = document.createElement("tr");
      cols.forEach(function (c) {
        var td = document.createElement("td");
        td.textContent = cellText(r[c]);
        tr.appendChild(td);
      });
      tbody.appendChild(tr);
    });
    table.appendChild(tbody);
    wrap.appendChild(table);
    return wrap;
  }

  function rebuild(snap) {
    var data = snap.data || {};
    var meta = snap.metadata || {};

    ["exportedAt", "version", "tableCount", "totalRecords"].forEach(function (k) {
      var el = document.querySelector('[data-meta="' + k + '"]');
      if (el && meta[k] !== undefined) el.textContent = meta[k];
    });

    var stats = computeStats(data);
    setStat("financial.totalRevenue", fmtMoney(stats.financial.totalRevenue));
    setStat("financial.totalCosts", fmtMoney(stats.financial.totalCosts));
    setStat("financial.netIncome", fmtMoney(stats.financial.netIncome));
    setStat("financial.profitMargin", fmtPct(stats.financial.profitMargin));
    setStat("sales.count", stats.sales.count);
    setStat("sales.revenue", fmtMoney(stats.sales.revenue));
    setStat("sales.average", fmtMoney(stats.sales.average));
    setStat("sales.monthCount", stats.sales.monthCount);
    setStat("sales.monthRevenue", fmtMoney(stats.sales.monthRevenue));
    setStat("sales.growth", fmtPct(stats.sales.growth));
    setStat("sales.bestDay", stats.sales.bestDay || "N/A");
    setStat("expenses.count", stats.expenses.count);
    setStat("expenses.total", fmtMoney(stats.expenses.total));
    setStat("expenses.average", fmtMoney(stats.expenses.average));
    setStat("expenses.monthCount", stats.expenses.monthCount);
    setStat("inventory.inCount", stats.inventory.inCount);
    setStat("inventory.outCount", stats.inventory.outCount);
    setStat("inventory.purchaseValue", fmtMoney(stats.inventory.purchaseValue));
    setStat("inventory.clearanceValue", fmtMoney(stats.inventory.clearanceValue));
    setStat("products.count", stats.products.count);
    setStat("products.stockValue", fmtMoney(stats.products.stockValue));
    setStat("users.total", stats.users.total);
    setStat("users.active", stats.users.active);
    setStat("finance.loanPrincipal", fmtMoney(stats.finance.loanPrincipal));
    setStat("finance.loanRepaid", fmtMoney(stats.finance.loanRepaid));
    setStat("finance.loanOutstanding", fmtMoney(stats.finance.loanOutstanding));
    setStat("finance.investmentTotal", fmtMoney(stats.finance.investmentTotal));
    setStat("finance.cashIn", fmtMoney(stats.finance.cashIn));
    setStat("finance.cashOut", fmtMoney(stats.finance.cashOut));
    setStat("rewards.count", stats.rewards.count);
    setStat("rewards.pointsIssued", stats.rewards.pointsIssued);
    setStat("rewards.pointsRedeemed", stats.rewards.pointsRedeemed);
    setStat("requests.count", stats.requests.count);
    setStat("requests.pending", stats.requests.pending);
    setStat("requests.items", stats.requests.items);

    var firstVisible = null;
    config.sections.forEach(function (sec) {
      var visible = sec.Tables.some(function (t) { return (data[t] || []).length > 0; });
      var tab = nav.querySelector('button[data-tab="' + sec.ID + '"]');
      var el = document.querySelector('section[data-section="' + sec.ID + '"]');
      if (tab) tab.hidden = !visible;
      if (!el) return;
      if (visible && !firstVisible) firstVisible = sec.ID;
      var holder = el.querySelector(".tables");
      holder.innerHTML = "";
      sec.Tables.forEach(function (t) {
        if ((data[t] || []).length > 0) holder.appendChild(buildTable(t, data[t]));
      });
    });
    if (firstVisible) activate(firstVisible);
  }

  var errBox = document.getElementById("upload-error");
  document.getElementById("upload-input").addEventListener("change", function (e) {
    var file = e.target.files[0];
    if (!file) return;
    errBox.style.display = "none";
    var reader = new FileReader();
    reader.onload = function () {
      try {
        var snap = rewriteCurrency(extractSnapshot(reader.result));
        rebuild(snap);
      } catch (err) {
        errBox.textContent = "Could not load file: " + err.message;
        errBox.style.display = "block";
      }
    };
    reader.readAsText(file);
  });
})();
</script>
</body>
</html>
`
