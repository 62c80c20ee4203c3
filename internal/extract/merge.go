package extract

import "github.com/pdfsift/pdfsift/internal/schema"

// Merge unions per-batch results into the final mapping and checks bijective
// coverage against the schema: every schema field has exactly one entry and
// nothing else sneaks in.
//
// Batches carry disjoint field sets, so a field present in two results is an
// internal-consistency error. Order of the input results does not matter.
func Merge(results []Result, fields []schema.Field) (Result, error) {
	merged := make(Result, len(fields))

	for _, batch := range results {
		for name, fr := range batch {
			if _, dup := merged[name]; dup {
				return nil, &DuplicateResultError{Name: name}
			}
			merged[name] = fr
		}
	}

	expected := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		expected[field.Name] = struct{}{}
		if _, ok := merged[field.Name]; !ok {
			return nil, &FieldMissingError{Name: field.Name}
		}
	}

	for name := range merged {
		if _, ok := expected[name]; !ok {
			return nil, &UnexpectedFieldError{Name: name}
		}
	}

	return merged, nil
}
