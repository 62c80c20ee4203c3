// Package schema parses and validates extraction schemas and compiles them
// into structured-output contracts.
//
// A schema is an ordered list of fields, one per CSV row, each naming a value
// to pull out of the document. Row order is meaningful: it defines the column
// order of the final output.
package schema

import (
	"strings"
	"unicode"
)

// Kind is the value type of a schema field. It determines the primitive JSON
// type the extraction backend is allowed to return for the field's value.
type Kind string

const (
	KindCategorical Kind = "categorical"
	KindNumber      Kind = "number"
	KindText        Kind = "text"
)

// Validation limits for schema rows. Lengths are byte lengths; fields are
// required to be pure ASCII so byte and rune counts coincide.
const (
	MaxFieldNameLen   = 16
	MaxDescriptionLen = 100
)

// ValueType returns the JSON type used for this kind's value in the output
// contract.
func (k Kind) ValueType() string {
	if k == KindNumber {
		return "number"
	}
	return "string"
}

// ParseKind parses a raw kind literal. Matching is case-insensitive.
// fieldName is used for error reporting only.
func ParseKind(raw, fieldName string) (Kind, error) {
	switch strings.ToLower(raw) {
	case "categorical":
		return KindCategorical, nil
	case "number":
		return KindNumber, nil
	case "text":
		return KindText, nil
	default:
		return "", &InvalidKindError{Raw: raw, Field: fieldName}
	}
}

// Field is one validated schema row.
type Field struct {
	Name        string
	Description string
	Kind        Kind
	Infer       bool
}

// ParseField validates one raw schema row and produces a Field.
//
// Checks run in a fixed order so diagnostics are deterministic: name length,
// name charset, description length, description charset, kind literal, infer
// literal. The first failing check wins and no partial Field is returned.
func ParseField(name, description, kind, infer string) (Field, error) {
	if len(name) > MaxFieldNameLen {
		return Field{}, &FieldNameTooLongError{Name: name, Length: len(name)}
	}
	if !isASCII(name) {
		return Field{}, &NonASCIIFieldNameError{Name: name}
	}
	if len(description) > MaxDescriptionLen {
		return Field{}, &DescriptionTooLongError{Field: name, Length: len(description)}
	}
	if !isASCII(description) {
		return Field{}, &NonASCIIDescriptionError{Field: name}
	}

	k, err := ParseKind(kind, name)
	if err != nil {
		return Field{}, err
	}

	inf, err := parseInfer(infer, name)
	if err != nil {
		return Field{}, err
	}

	return Field{
		Name:        name,
		Description: description,
		Kind:        k,
		Infer:       inf,
	}, nil
}

// parseInfer parses a raw infer literal. Matching is case-insensitive and
// accepts the same truth literals as the schema format: true/false, yes/no,
// 1/0.
func parseInfer(raw, fieldName string) (bool, error) {
	switch strings.ToLower(raw) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	default:
		return false, &InvalidInferError{Raw: raw, Field: fieldName}
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
