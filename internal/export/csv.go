package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/karobarhq/karobar/internal/core"
)

// EncodeCSV renders one table's rows as delimited text.
//
// The header is the union of all keys observed across the table's rows, in
// first-seen order. Missing values render as empty fields; object and array
// values are JSON-encoded inline. encoding/csv applies standard quote/comma
// escaping (quote-wrap, internal quotes doubled).
func EncodeCSV(rows []core.Row) ([]byte, error) {
	columns := core.UnionColumns(rows)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = core.FormatValue(row[col])
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}
