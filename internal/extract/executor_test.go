package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/pdfsift/pdfsift/internal/providers"
	"github.com/pdfsift/pdfsift/internal/schema"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPayload() Payload {
	return Payload{
		Filename: "doc.pdf",
		DataURL:  "data:application/pdf;base64,JVBERi0=",
		Pages:    1,
	}
}

// respondToContract builds a conforming answer for whatever contract the
// request carries, one "found" record per required field. Safe to call from
// executor goroutines.
func respondToContract(req *providers.ChatRequest) (json.RawMessage, error) {
	var wrapper struct {
		Schema struct {
			Required []string `json:"required"`
		} `json:"schema"`
	}
	if err := json.Unmarshal(req.ResponseFormat.JSONSchema, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse response format: %w", err)
	}

	records := make(map[string]any, len(wrapper.Schema.Required))
	for _, name := range wrapper.Schema.Required {
		records[name] = map[string]any{
			"value":      "value of " + name,
			"match_type": "found",
			"comment":    nil,
			"page":       1,
			"xmin":       0.0, "ymin": 0.0, "xmax": 10.0, "ymax": 10.0,
		}
	}

	return json.Marshal(records)
}

func TestExecuteBatch(t *testing.T) {
	fields := makeFields(3)

	t.Run("conforming answer decodes", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.RespondFunc = respondToContract
		exec := NewExecutor(mock, nil, "test-model", testLogger())

		result, usage, err := exec.ExecuteBatch(context.Background(), testPayload(), fields, 0)
		if err != nil {
			t.Fatalf("ExecuteBatch() error = %v", err)
		}
		if len(result) != len(fields) {
			t.Fatalf("got %d records, want %d", len(result), len(fields))
		}
		for _, f := range fields {
			fr, ok := result[f.Name]
			if !ok {
				t.Errorf("missing record for %q", f.Name)
				continue
			}
			if fr.MatchType != MatchFound {
				t.Errorf("%s: MatchType = %q", f.Name, fr.MatchType)
			}
		}
		if usage.TotalTokens == 0 {
			t.Error("usage not accounted")
		}
	})

	t.Run("transport failure is a batch error", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.ShouldFail = true
		exec := NewExecutor(mock, nil, "", testLogger())

		_, _, err := exec.ExecuteBatch(context.Background(), testPayload(), fields, 2)

		var batchErr *BatchError
		if !errors.As(err, &batchErr) {
			t.Fatalf("error = %v, want BatchError", err)
		}
		if batchErr.Batch != 2 {
			t.Errorf("Batch = %d, want 2", batchErr.Batch)
		}
	})

	t.Run("non-JSON answer is a batch error", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.ResponseText = "I could not find any of those fields, sorry."
		exec := NewExecutor(mock, nil, "", testLogger())

		_, _, err := exec.ExecuteBatch(context.Background(), testPayload(), fields, 0)

		var batchErr *BatchError
		if !errors.As(err, &batchErr) {
			t.Fatalf("error = %v, want BatchError", err)
		}
	})

	t.Run("code-fenced answer is recovered", func(t *testing.T) {
		single := []schema.Field{{Name: "title", Description: "Title", Kind: schema.KindText}}
		body := `{"title":{"value":"Deep Learning","match_type":"found","comment":null,"page":1,"xmin":0,"ymin":0,"xmax":1,"ymax":1}}`

		mock := providers.NewMockClient()
		mock.ResponseText = "```json\n" + body + "\n```"
		exec := NewExecutor(mock, nil, "", testLogger())

		result, _, err := exec.ExecuteBatch(context.Background(), testPayload(), single, 0)
		if err != nil {
			t.Fatalf("ExecuteBatch() error = %v", err)
		}
		if result["title"].Value != "Deep Learning" {
			t.Errorf("title value = %v", result["title"].Value)
		}
	})

	t.Run("answer missing a required member violates the contract", func(t *testing.T) {
		single := []schema.Field{{Name: "title", Description: "Title", Kind: schema.KindText}}
		// No match_type.
		body := `{"title":{"value":"x","comment":null,"page":1,"xmin":0,"ymin":0,"xmax":0,"ymax":0}}`

		mock := providers.NewMockClient()
		mock.ResponseJSON = json.RawMessage(body)
		exec := NewExecutor(mock, nil, "", testLogger())

		_, _, err := exec.ExecuteBatch(context.Background(), testPayload(), single, 0)

		var batchErr *BatchError
		if !errors.As(err, &batchErr) {
			t.Fatalf("error = %v, want BatchError", err)
		}
	})

	t.Run("answer with unknown field violates the contract", func(t *testing.T) {
		single := []schema.Field{{Name: "title", Description: "Title", Kind: schema.KindText}}
		record := `{"value":"x","match_type":"found","comment":null,"page":1,"xmin":0,"ymin":0,"xmax":0,"ymax":0}`
		body := fmt.Sprintf(`{"title":%s,"bonus":%s}`, record, record)

		mock := providers.NewMockClient()
		mock.ResponseJSON = json.RawMessage(body)
		exec := NewExecutor(mock, nil, "", testLogger())

		_, _, err := exec.ExecuteBatch(context.Background(), testPayload(), single, 0)
		if err == nil {
			t.Fatal("expected contract violation for unknown field")
		}
		if !strings.Contains(err.Error(), "batch 0") {
			t.Errorf("error %q does not identify the batch", err.Error())
		}
	})

	t.Run("wrong value type for number kind is rejected", func(t *testing.T) {
		single := []schema.Field{{Name: "year", Description: "Year", Kind: schema.KindNumber}}
		body := `{"year":{"value":"nineteen eighty-four","match_type":"found","comment":null,"page":1,"xmin":0,"ymin":0,"xmax":0,"ymax":0}}`

		mock := providers.NewMockClient()
		mock.ResponseJSON = json.RawMessage(body)
		exec := NewExecutor(mock, nil, "", testLogger())

		if _, _, err := exec.ExecuteBatch(context.Background(), testPayload(), single, 0); err == nil {
			t.Fatal("expected contract violation for string value on number field")
		}
	})
}
