package sheets

import "strings"

// Table is a worksheet snapshot: a header row plus data rows. Rows may be
// ragged; accessors are bounds-safe so a short row reads as empty cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Col returns the index of the first header containing every term
// (case-insensitive substring match), or -1. Worksheets are hand-edited,
// so exact header names cannot be relied on.
func (t *Table) Col(terms ...string) int {
	if t == nil {
		return -1
	}
	for i, header := range t.Headers {
		h := strings.ToLower(header)
		matched := true
		for _, term := range terms {
			if !strings.Contains(h, strings.ToLower(term)) {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
	}
	return -1
}

// Cell returns row[idx], or "" when the row is short or idx is -1.
func (t *Table) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Records converts the data rows to maps keyed by trimmed header name.
// Missing cells become empty strings so every record has every key.
func (t *Table) Records() []map[string]string {
	if t == nil {
		return nil
	}
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(map[string]string, len(t.Headers))
		for i, header := range t.Headers {
			key := strings.TrimSpace(header)
			if i < len(row) {
				record[key] = row[i]
			} else {
				record[key] = ""
			}
		}
		records = append(records, record)
	}
	return records
}

// URLSet collects the non-empty values of the given column into a set.
// Used for duplicate detection across runs.
func (t *Table) URLSet(idx int) map[string]struct{} {
	seen := make(map[string]struct{})
	if t == nil || idx < 0 {
		return seen
	}
	for _, row := range t.Rows {
		if url := t.Cell(row, idx); url != "" {
			seen[url] = struct{}{}
		}
	}
	return seen
}
