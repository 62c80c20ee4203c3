package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is an LLMClient for testing.
type MockClient struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool
	FailAfter    int // Fail after N requests (0 = never)
	ResponseText string
	ResponseJSON json.RawMessage

	// RespondFunc, when set, computes the response per request and overrides
	// ResponseText/ResponseJSON.
	RespondFunc func(req *ChatRequest) (json.RawMessage, error)

	// State
	requestCount atomic.Int64
}

// NewMockClient creates a new mock client with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		Latency:      time.Millisecond,
		ResponseText: "mock response",
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// RequestCount returns the number of Chat calls made.
func (c *MockClient) RequestCount() int {
	return int(c.requestCount.Load())
}

// Chat sends a mock chat request.
func (c *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()
	count := c.requestCount.Add(1)

	if c.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Latency):
		}
	}

	if c.ShouldFail || (c.FailAfter > 0 && int(count) > c.FailAfter) {
		return nil, fmt.Errorf("mock failure on request %d", count)
	}

	result := &ChatResult{
		RequestID:        fmt.Sprintf("mock-%d", count),
		Provider:         MockClientName,
		ModelUsed:        req.Model,
		Attempts:         1,
		PromptTokens:     10,
		CompletionTokens: 5,
		TotalTokens:      15,
		ExecutionTime:    time.Since(start),
	}

	if c.RespondFunc != nil {
		raw, err := c.RespondFunc(req)
		if err != nil {
			return nil, err
		}
		result.Content = string(raw)
		result.ParsedJSON = raw
		return result, nil
	}

	if len(c.ResponseJSON) > 0 {
		result.Content = string(c.ResponseJSON)
		result.ParsedJSON = c.ResponseJSON
		return result, nil
	}

	result.Content = c.ResponseText
	return result, nil
}

// Verify interface
var _ LLMClient = (*MockClient)(nil)
