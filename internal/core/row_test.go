package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRowNum(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		keys []string
		want float64
	}{
		{"float64", Row{"amount": 42.5}, []string{"amount"}, 42.5},
		{"int", Row{"amount": 7}, []string{"amount"}, 7},
		{"int64", Row{"amount": int64(9)}, []string{"amount"}, 9},
		{"json number", Row{"amount": json.Number("3.25")}, []string{"amount"}, 3.25},
		{"numeric string", Row{"amount": "1500.75"}, []string{"amount"}, 1500.75},
		{"currency string", Row{"amount": "$1,234.56"}, []string{"amount"}, 1234.56},
		{"rupee string", Row{"amount": "₹2,000"}, []string{"amount"}, 2000},
		{"fallback key", Row{"total": 10.0}, []string{"amount", "total"}, 10},
		{"first key wins", Row{"amount": 1.0, "total": 2.0}, []string{"amount", "total"}, 1},
		{"nil value skipped", Row{"amount": nil, "total": 5.0}, []string{"amount", "total"}, 5},
		{"missing", Row{}, []string{"amount"}, 0},
		{"non-numeric string", Row{"amount": "n/a"}, []string{"amount"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Num(tt.keys...); got != tt.want {
				t.Errorf("Num(%v) = %v, want %v", tt.keys, got, tt.want)
			}
		})
	}
}

func TestRowStr(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		keys []string
		want string
	}{
		{"string", Row{"name": "Ali"}, []string{"name"}, "Ali"},
		{"float", Row{"id": 12.0}, []string{"id"}, "12"},
		{"bool", Row{"flag": true}, []string{"flag"}, "true"},
		{"fallback key", Row{"type": "in"}, []string{"transaction_type", "type"}, "in"},
		{"missing", Row{}, []string{"name"}, ""},
		{"nil", Row{"name": nil}, []string{"name"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Str(tt.keys...); got != tt.want {
				t.Errorf("Str(%v) = %q, want %q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestRowBool(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		def  bool
		keys []string
		want bool
	}{
		{"true", Row{"is_active": true}, false, []string{"is_active"}, true},
		{"false", Row{"is_active": false}, true, []string{"is_active"}, false},
		{"string true", Row{"is_active": "true"}, false, []string{"is_active"}, true},
		{"missing uses default", Row{}, true, []string{"is_active"}, true},
		{"unparseable uses default", Row{"is_active": "maybe"}, true, []string{"is_active"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Bool(tt.def, tt.keys...); got != tt.want {
				t.Errorf("Bool(%v, %v) = %v, want %v", tt.def, tt.keys, got, tt.want)
			}
		})
	}
}

func TestRowTime(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		keys []string
		want time.Time
	}{
		{
			"rfc3339",
			Row{"created_at": "2026-03-15T10:30:00Z"},
			[]string{"created_at"},
			time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			"date only",
			Row{"sale_date": "2026-03-15"},
			[]string{"sale_date"},
			time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			"sql timestamp",
			Row{"created_at": "2026-03-15 10:30:00"},
			[]string{"created_at"},
			time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{"missing", Row{}, []string{"created_at"}, time.Time{}},
		{"garbage", Row{"created_at": "yesterday"}, []string{"created_at"}, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Time(tt.keys...); !got.Equal(tt.want) {
				t.Errorf("Time(%v) = %v, want %v", tt.keys, got, tt.want)
			}
		})
	}
}
