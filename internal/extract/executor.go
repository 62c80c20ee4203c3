package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pdfsift/pdfsift/internal/prompt"
	"github.com/pdfsift/pdfsift/internal/providers"
	"github.com/pdfsift/pdfsift/internal/schema"
)

// Payload is the document under extraction, already encoded for upload. It
// is read-only and shared by every batch executor.
type Payload struct {
	Filename string
	DataURL  string
	Pages    int
}

// Executor runs one extraction call per batch. It is safe for concurrent use:
// all fields are read-only after construction.
type Executor struct {
	client  providers.LLMClient
	limiter *providers.Limiter
	model   string
	logger  *slog.Logger
}

// NewExecutor creates a batch executor. limiter may be nil to disable
// throttling; model may be empty to use the client default.
func NewExecutor(client providers.LLMClient, limiter *providers.Limiter, model string, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		client:  client,
		limiter: limiter,
		model:   model,
		logger:  logger,
	}
}

// BatchUsage accumulates token and attempt accounting for one batch.
type BatchUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Attempts         int
}

// ExecuteBatch compiles the output contract and prompt for one batch, invokes
// the backend, and decodes the answer into per-field records restricted to
// the batch's field names.
//
// Every failure is fatal to the batch and comes back as a *BatchError:
// transport errors, syntactically invalid JSON, and answers that do not
// conform to the contract.
func (e *Executor) ExecuteBatch(ctx context.Context, doc Payload, fields []schema.Field, index int) (Result, BatchUsage, error) {
	contract := schema.BuildContract(fields)
	contractJSON, err := json.Marshal(contract)
	if err != nil {
		return nil, BatchUsage{}, &BatchError{Batch: index, Err: fmt.Errorf("failed to serialize output contract: %w", err)}
	}

	format, err := json.Marshal(map[string]any{
		"name":   "extraction",
		"strict": true,
		"schema": contract,
	})
	if err != nil {
		return nil, BatchUsage{}, &BatchError{Batch: index, Err: fmt.Errorf("failed to serialize response format: %w", err)}
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, BatchUsage{}, &BatchError{Batch: index, Err: err}
	}

	req := &providers.ChatRequest{
		Model: e.model,
		Messages: []providers.Message{
			{
				Role:    "user",
				Content: prompt.Build(fields),
				Files: []providers.FileAttachment{
					{Filename: doc.Filename, DataURL: doc.DataURL},
				},
			},
		},
		ResponseFormat: &providers.ResponseFormat{
			Type:       "json_schema",
			JSONSchema: format,
		},
	}

	e.logger.Debug("executing batch", "batch", index, "fields", len(fields))

	resp, err := e.client.Chat(ctx, req)
	if err != nil {
		usage := BatchUsage{}
		if resp != nil {
			usage.Attempts = resp.Attempts
		}
		return nil, usage, &BatchError{Batch: index, Err: err}
	}

	usage := BatchUsage{
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
		TotalTokens:      resp.TotalTokens,
		Attempts:         resp.Attempts,
	}

	parsed := resp.ParsedJSON
	if parsed == nil {
		parsed, err = providers.ParseStructured(resp.Content)
		if err != nil {
			return nil, usage, &BatchError{Batch: index, Err: err}
		}
	}

	if err := providers.ValidateStructured(contractJSON, parsed); err != nil {
		return nil, usage, &BatchError{Batch: index, Err: err}
	}

	var result Result
	if err := json.Unmarshal(parsed, &result); err != nil {
		return nil, usage, &BatchError{Batch: index, Err: fmt.Errorf("failed to decode extraction result: %w", err)}
	}

	e.logger.Debug("batch complete",
		"batch", index,
		"fields", len(fields),
		"tokens", usage.TotalTokens,
		"attempts", usage.Attempts,
	)

	return result, usage, nil
}
