// Package tables converts raw 2-D table regions extracted from source
// documents into rows keyed by header cell text.
package tables

import (
	"fmt"
	"strings"
)

// Row maps a header label to the cell text under it.
type Row map[string]string

// Region is a raw 2-D grid of cell text as produced by a source adapter.
// The first row is treated as the header row.
type Region [][]string

// Result carries the table regions extracted from one source document.
// A nil Err with no regions means the document simply has no tables;
// a non-nil Err means extraction itself failed and regions may be partial.
type Result struct {
	Regions []Region
	Err     error
}

// Extract converts one region into rows keyed by header text. If every
// header cell is empty, positional labels (col_1, col_2, ...) are
// synthesized. A malformed region yields an empty result rather than an
// error; table failures never propagate to the whole document.
func Extract(region Region) []Row {
	if len(region) < 1 || len(region[0]) == 0 {
		return nil
	}

	headers := make([]string, len(region[0]))
	empty := true
	for i, h := range region[0] {
		headers[i] = strings.TrimSpace(h)
		if headers[i] != "" {
			empty = false
		}
	}
	if empty {
		for i := range headers {
			headers[i] = fmt.Sprintf("col_%d", i+1)
		}
	}

	var rows []Row
	for _, cells := range region[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				row[h] = strings.TrimSpace(cells[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
