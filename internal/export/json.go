package export

import (
	"encoding/json"
	"fmt"

	"github.com/karobarhq/karobar/internal/core"
)

// EncodeDump serializes the entire snapshot verbatim as pretty-printed JSON.
// Top-level shape is exactly {"metadata": {...}, "data": {table: [rows]}}.
func EncodeDump(snap *core.Snapshot) ([]byte, error) {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode dump: %w", err)
	}
	return b, nil
}
