package core

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// row.go provides tolerant field accessors for the schema-less Row type.
//
// Source rows are open-ended key/value maps whose fields vary by table and
// by row. Every accessor takes a list of candidate keys (stores disagree on
// naming, e.g. "type" vs "transaction_type") and returns a zero-value
// fallback when no candidate is present or convertible, so derived
// statistics never propagate NaN or panic on a missing field.

// Num returns the first numeric value found under the candidate keys.
// Handles float64, int variants, json.Number, and numeric strings
// (optionally with currency symbols and thousands separators).
func (r Row) Num(keys ...string) float64 {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case int:
			return float64(n)
		case int32:
			return float64(n)
		case int64:
			return float64(n)
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f
			}
		case string:
			if f, ok := parseLooseNumber(n); ok {
				return f
			}
		}
	}
	return 0
}

// Str returns the first string value found under the candidate keys.
// Non-string scalars are stringified; absent keys yield "".
func (r Row) Str(keys ...string) string {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			return s
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(s)
		case json.Number:
			return s.String()
		}
	}
	return ""
}

// Bool returns the first boolean value found under the candidate keys.
// Missing keys yield the provided default, so "active unless explicitly
// flagged inactive" reads as r.Bool(true, "is_active").
func (r Row) Bool(def bool, keys ...string) bool {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil {
				return parsed
			}
		}
	}
	return def
}

// Time returns the first parseable timestamp found under the candidate keys.
// Returns the zero time when no candidate parses, which callers must check
// before using the value in date arithmetic.
func (r Row) Time(keys ...string) time.Time {
	for _, key := range keys {
		s := r.Str(key)
		if s == "" {
			continue
		}
		for _, layout := range []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02 15:04:05",
			"2006-01-02",
		} {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// parseLooseNumber parses a numeric string that may carry a currency symbol,
// thousands separators, or surrounding whitespace.
func parseLooseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$₹€£ ")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
