package extract

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pdfsift/pdfsift/internal/providers"
)

func TestRunnerRun(t *testing.T) {
	t.Run("three fields fit one batch", func(t *testing.T) {
		fields := makeFields(3)
		mock := providers.NewMockClient()
		mock.RespondFunc = func(req *providers.ChatRequest) (json.RawMessage, error) {
			return respondToContract(req)
		}

		runner := NewRunner(RunnerConfig{
			Client:    mock,
			BatchSize: 20,
			Logger:    testLogger(),
		})

		report, err := runner.Run(context.Background(), fields, testPayload())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if report.Batches != 1 {
			t.Errorf("Batches = %d, want 1", report.Batches)
		}
		if mock.RequestCount() != 1 {
			t.Errorf("requests = %d, want 1", mock.RequestCount())
		}
		if len(report.Result) != 3 {
			t.Errorf("got %d results, want 3", len(report.Result))
		}
	})

	t.Run("45 fields split into 3 concurrent batches", func(t *testing.T) {
		fields := makeFields(45)
		mock := providers.NewMockClient()
		mock.RespondFunc = func(req *providers.ChatRequest) (json.RawMessage, error) {
			return respondToContract(req)
		}

		runner := NewRunner(RunnerConfig{
			Client:    mock,
			BatchSize: 20,
			Logger:    testLogger(),
		})

		report, err := runner.Run(context.Background(), fields, testPayload())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if report.Batches != 3 {
			t.Errorf("Batches = %d, want 3", report.Batches)
		}
		if mock.RequestCount() != 3 {
			t.Errorf("requests = %d, want 3", mock.RequestCount())
		}
		if len(report.Result) != 45 {
			t.Fatalf("got %d results, want 45", len(report.Result))
		}
		for _, f := range fields {
			if _, ok := report.Result[f.Name]; !ok {
				t.Errorf("missing result for %q", f.Name)
			}
		}
		if report.TotalTokens == 0 {
			t.Error("token usage not summed across batches")
		}
	})

	t.Run("answer missing a field fails naming it", func(t *testing.T) {
		fields := makeFields(3)
		dropped := fields[1].Name

		mock := providers.NewMockClient()
		mock.RespondFunc = func(req *providers.ChatRequest) (json.RawMessage, error) {
			raw, err := respondToContract(req)
			if err != nil {
				return nil, err
			}
			var records map[string]json.RawMessage
			if err := json.Unmarshal(raw, &records); err != nil {
				return nil, err
			}
			delete(records, dropped)
			return json.Marshal(records)
		}

		runner := NewRunner(RunnerConfig{
			Client:    mock,
			BatchSize: 20,
			Logger:    testLogger(),
		})

		_, err := runner.Run(context.Background(), fields, testPayload())
		if err == nil {
			t.Fatal("expected failure for missing field")
		}
		if !strings.Contains(err.Error(), dropped) {
			t.Errorf("error %q does not name missing field %q", err.Error(), dropped)
		}
	})

	t.Run("one failing batch fails the run", func(t *testing.T) {
		fields := makeFields(45)
		var calls atomic.Int64
		mock := providers.NewMockClient()
		mock.Latency = 0
		mock.RespondFunc = func(req *providers.ChatRequest) (json.RawMessage, error) {
			if calls.Add(1) == 2 {
				return nil, errors.New("boom")
			}
			return respondToContract(req)
		}

		runner := NewRunner(RunnerConfig{
			Client:    mock,
			BatchSize: 20,
			Logger:    testLogger(),
		})

		_, err := runner.Run(context.Background(), fields, testPayload())

		var batchErr *BatchError
		if !errors.As(err, &batchErr) {
			t.Fatalf("error = %v, want BatchError", err)
		}
	})

	t.Run("zero batch size falls back to default", func(t *testing.T) {
		runner := NewRunner(RunnerConfig{Client: providers.NewMockClient(), Logger: testLogger()})
		if runner.batchSize != DefaultBatchSize {
			t.Errorf("batchSize = %d, want %d", runner.batchSize, DefaultBatchSize)
		}
	})
}

func TestReportDurationFormat(t *testing.T) {
	report := Report{Duration: Duration(2500 * time.Millisecond)}

	j, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(j), `"duration":"2.5s"`) {
		t.Errorf("json summary renders duration as %s", j)
	}

	y, err := yaml.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(y), "duration: 2.5s") {
		t.Errorf("yaml summary renders duration as %s", y)
	}
}
