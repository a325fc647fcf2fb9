package report

import (
	"regexp"
	"sync"

	"github.com/karobarhq/karobar/internal/core"
)

// Currency-notation normalization. String fields matching a currency-amount
// pattern with the old symbol are rewritten to the target display symbol,
// recursively through nested objects and sequences. Cosmetic, but required
// for compatibility with documents exported before the symbol changed.

var (
	currencyPatterns   = make(map[string]*regexp.Regexp)
	currencyPatternsMu sync.Mutex
)

func currencyPattern(symbol string) *regexp.Regexp {
	currencyPatternsMu.Lock()
	defer currencyPatternsMu.Unlock()

	if re, ok := currencyPatterns[symbol]; ok {
		return re
	}
	re := regexp.MustCompile(regexp.QuoteMeta(symbol) + `\s?(\d[\d,]*(?:\.\d+)?)`)
	currencyPatterns[symbol] = re
	return re
}

// RewriteCurrency rewrites currency-amount notation in v from one symbol to
// another, descending into maps and slices. Non-string scalars pass through
// unchanged.
func RewriteCurrency(v any, from, to string) any {
	if from == "" || from == to {
		return v
	}
	re := currencyPattern(from)
	return rewriteValue(v, re, to)
}

func rewriteValue(v any, re *regexp.Regexp, to string) any {
	switch t := v.(type) {
	case string:
		return re.ReplaceAllString(t, to+"$1")
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = rewriteValue(val, re, to)
		}
		return out
	case core.Row:
		out := make(core.Row, len(t))
		for k, val := range t {
			out[k] = rewriteValue(val, re, to)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = rewriteValue(val, re, to)
		}
		return out
	default:
		return v
	}
}

// rewriteRowCurrency rewrites one row, preserving the Row type.
func rewriteRowCurrency(row core.Row, from, to string) core.Row {
	return RewriteCurrency(row, from, to).(core.Row)
}
