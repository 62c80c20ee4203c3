package schema

import "fmt"

// FieldNameTooLongError reports a field name over MaxFieldNameLen bytes.
type FieldNameTooLongError struct {
	Name   string
	Length int
}

func (e *FieldNameTooLongError) Error() string {
	return fmt.Sprintf("field name %q exceeds %d characters (length %d)", e.Name, MaxFieldNameLen, e.Length)
}

// NonASCIIFieldNameError reports a field name containing non-ASCII bytes.
type NonASCIIFieldNameError struct {
	Name string
}

func (e *NonASCIIFieldNameError) Error() string {
	return fmt.Sprintf("field name %q contains non-ASCII characters", e.Name)
}

// DescriptionTooLongError reports a description over MaxDescriptionLen bytes.
type DescriptionTooLongError struct {
	Field  string
	Length int
}

func (e *DescriptionTooLongError) Error() string {
	return fmt.Sprintf("description for field %q exceeds %d characters (length %d)", e.Field, MaxDescriptionLen, e.Length)
}

// NonASCIIDescriptionError reports a description containing non-ASCII bytes.
type NonASCIIDescriptionError struct {
	Field string
}

func (e *NonASCIIDescriptionError) Error() string {
	return fmt.Sprintf("description for field %q contains non-ASCII characters", e.Field)
}

// InvalidKindError reports a kind literal outside the closed set.
type InvalidKindError struct {
	Raw   string
	Field string
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid kind %q for field %q: must be one of: categorical, number, text", e.Raw, e.Field)
}

// InvalidInferError reports an infer literal outside the closed set.
type InvalidInferError struct {
	Raw   string
	Field string
}

func (e *InvalidInferError) Error() string {
	return fmt.Sprintf("invalid infer value %q for field %q: must be true/false, yes/no, or 1/0", e.Raw, e.Field)
}

// DuplicateFieldNameError reports a field name appearing on two rows.
// Row is the 1-based row number of the second occurrence (header is row 1).
type DuplicateFieldNameError struct {
	Name string
	Row  int
}

func (e *DuplicateFieldNameError) Error() string {
	return fmt.Sprintf("duplicate field name %q at row %d", e.Name, e.Row)
}

// RowError annotates a validation failure with its 1-based row number.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("schema row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
