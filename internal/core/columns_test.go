package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestUnionColumns(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
		want []string
	}{
		{
			"disjoint rows union in first-seen order",
			[]Row{{"a": 1}, {"b": 2}},
			[]string{"a", "b"},
		},
		{
			"new keys append after existing",
			[]Row{{"id": 1, "name": "x"}, {"id": 2, "extra": true}},
			[]string{"id", "name", "extra"},
		},
		{
			"keys within one row sorted",
			[]Row{{"c": 1, "a": 2, "b": 3}},
			[]string{"a", "b", "c"},
		},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnionColumns(tt.rows); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UnionColumns() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"float whole", 42.0, "42"},
		{"float fraction", 42.5, "42.5"},
		{"bool", true, "true"},
		{"json number", json.Number("99"), "99"},
		{"nested map", map[string]any{"k": "v"}, `{"k":"v"}`},
		{"array", []any{1.0, 2.0}, "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.in); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
