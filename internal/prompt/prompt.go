// Package prompt compiles extraction instructions from a field list.
//
// The instruction text is an embedded template with a single substitution
// point for the per-field listing, so compilation is deterministic: identical
// field sequences produce byte-identical prompts.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdfsift/pdfsift/internal/schema"
)

//go:embed extract.tmpl
var extractTmpl string

var extractTemplate = template.Must(template.New("extract").Parse(extractTmpl))

// inferNote is appended under a field's listing when the schema permits
// best-guess extraction for it.
const inferNote = "  (This field should be inferred if not explicitly found)\n"

// Build compiles the extraction prompt for a field sequence.
func Build(fields []schema.Field) string {
	var list strings.Builder
	for _, field := range fields {
		fmt.Fprintf(&list, "- **%s**: %s\n", field.Name, field.Description)
		if field.Infer {
			list.WriteString(inferNote)
		}
	}

	var buf bytes.Buffer
	data := struct{ FieldsList string }{FieldsList: list.String()}
	if err := extractTemplate.Execute(&buf, data); err != nil {
		// The template has a single string substitution; execution cannot
		// fail at runtime. Fall back to the raw template just in case.
		return extractTmpl
	}
	return buf.String()
}
