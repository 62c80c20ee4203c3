package schema

// Match type literals the extraction backend may return for a field.
var matchTypes = []string{"found", "not_found", "inferred"}

// BuildContract compiles an ordered field list into the JSON schema that
// constrains the extraction backend's answer shape.
//
// Each field maps to an object with exactly these required members: value
// (nullable, number for KindNumber, string otherwise, carrying the field's
// description), match_type, comment (nullable string), page (integer) and the
// xmin/ymin/xmax/ymax evidence box (numbers). The top level requires every
// field name in schema order and forbids extra properties.
//
// The compiler is pure: the same field list always yields the same contract.
func BuildContract(fields []Field) map[string]any {
	properties := make(map[string]any, len(fields))
	required := make([]string, 0, len(fields))

	for _, field := range fields {
		properties[field.Name] = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"value": map[string]any{
					"type":        []string{field.Kind.ValueType(), "null"},
					"description": field.Description,
				},
				"match_type": map[string]any{
					"type": "string",
					"enum": matchTypes,
				},
				"comment": map[string]any{
					"type": []string{"string", "null"},
				},
				"page": map[string]any{
					"type": "integer",
				},
				"xmin": map[string]any{"type": "number"},
				"ymin": map[string]any{"type": "number"},
				"xmax": map[string]any{"type": "number"},
				"ymax": map[string]any{"type": "number"},
			},
			"required": []string{
				"value", "match_type", "comment", "page",
				"xmin", "ymin", "xmax", "ymax",
			},
			"additionalProperties": false,
		}
		required = append(required, field.Name)
	}

	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}
