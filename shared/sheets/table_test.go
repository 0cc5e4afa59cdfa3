package sheets

import "testing"

func sampleTable() *Table {
	return &Table{
		Headers: []string{"Name", "Profile URL", " Date Added "},
		Rows: [][]string{
			{"Jane Doe", "https://linkedin.com/in/jane", "2026-03-01"},
			{"Sam Lee", "https://linkedin.com/in/sam"},
			{"No URL", ""},
		},
	}
}

func TestCol(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name   string
		terms  []string
		expect int
	}{
		{"Single term", []string{"name"}, 0},
		{"Case insensitive", []string{"NAME"}, 0},
		{"Multiple terms", []string{"profile", "url"}, 1},
		{"Order independent", []string{"url", "profile"}, 1},
		{"Partial header", []string{"added"}, 2},
		{"No match", []string{"score"}, -1},
		{"All terms must match", []string{"profile", "score"}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Col(tt.terms...); got != tt.expect {
				t.Errorf("Col(%v) = %d, want %d", tt.terms, got, tt.expect)
			}
		})
	}
}

func TestCellBounds(t *testing.T) {
	table := sampleTable()
	short := table.Rows[1]

	if got := table.Cell(short, 1); got != "https://linkedin.com/in/sam" {
		t.Errorf("Expected URL, got %q", got)
	}
	if got := table.Cell(short, 2); got != "" {
		t.Errorf("Expected empty cell beyond row length, got %q", got)
	}
	if got := table.Cell(short, -1); got != "" {
		t.Errorf("Expected empty cell for negative index, got %q", got)
	}
}

func TestRecords(t *testing.T) {
	records := sampleTable().Records()

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0]["Name"] != "Jane Doe" {
		t.Errorf("Unexpected name: %q", records[0]["Name"])
	}
	// Header keys are trimmed
	if records[0]["Date Added"] != "2026-03-01" {
		t.Errorf("Expected trimmed header key, got record %v", records[0])
	}
	// Short rows read as empty strings
	if value, ok := records[1]["Date Added"]; !ok || value != "" {
		t.Errorf("Expected empty cell for short row, got %q (present: %v)", value, ok)
	}
}

func TestURLSet(t *testing.T) {
	table := sampleTable()

	urls := table.URLSet(table.Col("profile", "url"))
	if len(urls) != 2 {
		t.Fatalf("Expected 2 URLs (empty skipped), got %d", len(urls))
	}
	if _, ok := urls["https://linkedin.com/in/jane"]; !ok {
		t.Error("Expected jane's URL in set")
	}

	if got := table.URLSet(-1); len(got) != 0 {
		t.Errorf("Expected empty set for missing column, got %d entries", len(got))
	}
}

func TestEmpty(t *testing.T) {
	var nilTable *Table
	if !nilTable.Empty() {
		t.Error("Expected nil table to be empty")
	}
	if !(&Table{Headers: []string{"A"}}).Empty() {
		t.Error("Expected headers-only table to be empty")
	}
	if sampleTable().Empty() {
		t.Error("Expected populated table to be non-empty")
	}
}
