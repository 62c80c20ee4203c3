// Package extract drives batched field extraction against an LLM backend and
// merges the per-batch results into one schema-complete result set.
package extract

import "github.com/pdfsift/pdfsift/internal/schema"

// DefaultBatchSize is the number of fields sent per extraction request when
// no batch size is configured.
const DefaultBatchSize = 20

// Plan partitions an ordered field list into fixed-size batches.
//
// Order is preserved within and across batches, every field lands in exactly
// one batch, and the last batch may be short. size must be >= 1; it is
// enforced by configuration validation before a run starts.
func Plan(fields []schema.Field, size int) [][]schema.Field {
	if len(fields) == 0 {
		return nil
	}

	batches := make([][]schema.Field, 0, (len(fields)+size-1)/size)
	for start := 0; start < len(fields); start += size {
		end := start + size
		if end > len(fields) {
			end = len(fields)
		}
		batches = append(batches, fields[start:end])
	}
	return batches
}
