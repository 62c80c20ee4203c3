package extract

import "fmt"

// BatchError wraps any failure that kills a single batch: transport errors,
// unparsable answers, and contract violations. Batch is the 0-based batch
// index.
type BatchError struct {
	Batch int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %d: %v", e.Batch, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// DuplicateResultError reports a field returned by more than one batch.
// Batches partition the field set, so this signals a planner or executor
// defect, not bad user input.
type DuplicateResultError struct {
	Name string
}

func (e *DuplicateResultError) Error() string {
	return fmt.Sprintf("internal error: field %q returned by multiple batches", e.Name)
}

// FieldMissingError reports a schema field with no entry after all batches
// merged. The run cannot produce a complete output row set without it.
type FieldMissingError struct {
	Name string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("field %q missing from extraction result", e.Name)
}

// UnexpectedFieldError reports a merged field that is not in the schema.
type UnexpectedFieldError struct {
	Name string
}

func (e *UnexpectedFieldError) Error() string {
	return fmt.Sprintf("internal error: field %q returned but not in schema", e.Name)
}
