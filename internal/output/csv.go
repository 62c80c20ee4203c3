// Package output writes extraction results to disk and formats run
// summaries for the terminal.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/pdfsift/pdfsift/internal/extract"
	"github.com/pdfsift/pdfsift/internal/schema"
)

// csvHeader is the fixed column layout of the output file.
var csvHeader = []string{
	"field_name", "value", "match_type", "comment",
	"page", "xmin", "ymin", "xmax", "ymax",
}

// WriteCSV writes one row per schema field, in original schema order, so
// output is stable regardless of map iteration order. The result must be
// schema-complete (guaranteed by a successful merge).
func WriteCSV(path string, fields []schema.Field, result extract.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, field := range fields {
		fr, ok := result[field.Name]
		if !ok {
			return &extract.FieldMissingError{Name: field.Name}
		}

		row := []string{
			field.Name,
			fr.ValueString(),
			string(fr.MatchType),
			fr.CommentString(),
			strconv.Itoa(fr.Page),
			formatCoord(fr.XMin),
			formatCoord(fr.YMin),
			formatCoord(fr.XMax),
			formatCoord(fr.YMax),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row for field %q: %w", field.Name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
