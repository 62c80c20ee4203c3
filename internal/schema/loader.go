package schema

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Column names the schema CSV must carry in its header row.
var requiredColumns = []string{"field_name", "description", "kind", "infer"}

// Load validates a full tabular schema. records is the raw CSV content
// including the header row; columns are located by header name so column
// order is free.
//
// Rows are processed in file order and never reordered. Validation is
// fail-fast: the first violation is returned, annotated with its 1-based row
// number (the header counts as row 1, so the first data row is row 2).
func Load(records [][]string) ([]Field, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("schema is empty: missing header row")
	}

	cols, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	fields := make([]Field, 0, len(records)-1)
	seen := make(map[string]struct{}, len(records)-1)

	for i, rec := range records[1:] {
		row := i + 2

		cells, err := pickColumns(rec, cols)
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}

		field, err := ParseField(cells[0], cells[1], cells[2], cells[3])
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}

		if _, dup := seen[field.Name]; dup {
			return nil, &DuplicateFieldNameError{Name: field.Name, Row: row}
		}
		seen[field.Name] = struct{}{}

		fields = append(fields, field)
	}

	return fields, nil
}

// LoadFile reads and validates a schema CSV from disk.
func LoadFile(path string) ([]Field, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema CSV: %w", err)
	}

	return Load(records)
}

// mapColumns resolves required column names to indices in the header row.
// Header matching is case-insensitive.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("schema header is missing required column %q", name)
		}
	}
	return cols, nil
}

// pickColumns extracts the four schema cells from a record in canonical
// order: field_name, description, kind, infer.
func pickColumns(rec []string, cols map[string]int) ([4]string, error) {
	var cells [4]string
	for i, name := range requiredColumns {
		idx := cols[name]
		if idx >= len(rec) {
			return cells, fmt.Errorf("missing value for column %q", name)
		}
		cells[i] = rec[idx]
	}
	return cells, nil
}
