package core

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// UnionColumns collects every key observed across the rows, preserving
// first-seen order (not just the first row's keys, since different rows
// may carry different optional fields). Go map iteration is unordered, so
// keys within a single row are sorted on first sight to keep output
// deterministic.
func UnionColumns(rows []Row) []string {
	var columns []string
	seen := make(map[string]bool)

	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
			columns = append(columns, k)
		}
	}
	return columns
}

// FormatValue stringifies one cell value for tabular output. Object and
// array values are JSON-encoded inline; nil renders as an empty field.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
