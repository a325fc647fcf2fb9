package core

import "fmt"

// Scope names a subset of tables to assemble. A full backup covers every
// registered table; scoped backups cover a fixed named subset and carry a
// version tag that marks the snapshot as partial.
type Scope string

const (
	ScopeFull      Scope = "full"
	ScopeFinancial Scope = "financial"
	ScopeSales     Scope = "sales"
)

// scopeTables is the canonical scope membership list. Edit in one place
// only: the assembler, the exporter, and the web layer all resolve scopes
// through Tables.
var scopeTables = map[Scope][]string{
	ScopeFinancial: {
		"cash_transactions",
		"investments",
		"loans",
		"loan_payments",
		"expenses",
		"company_balance",
	},
	ScopeSales: {
		"sales",
		"products",
		"requests",
		"product_request_items",
	},
}

// ParseScope validates a scope name from user input.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeFull, ScopeFinancial, ScopeSales:
		return Scope(s), nil
	case "":
		return ScopeFull, nil
	default:
		return "", fmt.Errorf("unknown export scope %q", s)
	}
}

// Tables returns the table keys covered by the scope, in registry order
// for full backups and in declaration order for named subsets.
func (s Scope) Tables() []string {
	if s == ScopeFull {
		return Keys()
	}
	return scopeTables[s]
}

// Version returns the snapshot version tag for the scope.
// Full backups use the bare generator version; scoped backups append the
// scope name so a partial snapshot is never mistaken for a full one.
func (s Scope) Version() string {
	if s == ScopeFull {
		return SnapshotVersion
	}
	return SnapshotVersion + "-" + string(s)
}
