package extract

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdfsift/pdfsift/internal/providers"
	"github.com/pdfsift/pdfsift/internal/schema"
)

// RunnerConfig configures an extraction run.
type RunnerConfig struct {
	Client    providers.LLMClient
	Limiter   *providers.Limiter
	Model     string
	BatchSize int
	Logger    *slog.Logger
}

// Runner orchestrates a full extraction: plan batches, execute them
// concurrently, then merge.
type Runner struct {
	executor  *Executor
	batchSize int
	logger    *slog.Logger
}

// NewRunner creates a runner. cfg.BatchSize must be >= 1 (enforced by config
// validation); a zero value falls back to DefaultBatchSize.
func NewRunner(cfg RunnerConfig) *Runner {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Runner{
		executor:  NewExecutor(cfg.Client, cfg.Limiter, cfg.Model, cfg.Logger),
		batchSize: cfg.BatchSize,
		logger:    cfg.Logger,
	}
}

// Duration renders as "2.5s" in summaries instead of raw nanoseconds.
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d Duration) MarshalYAML() (any, error) { return d.String(), nil }

// Report summarizes a completed extraction run.
type Report struct {
	Result  Result `json:"-" yaml:"-"`
	Fields  int    `json:"fields" yaml:"fields"`
	Batches int    `json:"batches" yaml:"batches"`

	PromptTokens     int `json:"prompt_tokens" yaml:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens" yaml:"completion_tokens"`
	TotalTokens      int `json:"total_tokens" yaml:"total_tokens"`
	Attempts         int `json:"attempts" yaml:"attempts"`

	Duration Duration `json:"duration" yaml:"duration"`
}

// Run extracts all schema fields from the document.
//
// One goroutine is launched per batch; each performs exactly one network
// call. The group context cancels in-flight siblings once any batch fails,
// but Run always joins every launched goroutine before reporting, and the
// merge happens single-threaded after the join (join-then-merge). Each
// goroutine writes only its own slot of the results slice.
func (r *Runner) Run(ctx context.Context, fields []schema.Field, doc Payload) (*Report, error) {
	start := time.Now()
	batches := Plan(fields, r.batchSize)

	r.logger.Info("starting extraction",
		"document", doc.Filename,
		"pages", doc.Pages,
		"fields", len(fields),
		"batches", len(batches),
		"batch_size", r.batchSize,
	)

	results := make([]Result, len(batches))
	usages := make([]BatchUsage, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			res, usage, err := r.executor.ExecuteBatch(gctx, doc, batch, i)
			usages[i] = usage
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged, err := Merge(results, fields)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Result:   merged,
		Fields:   len(fields),
		Batches:  len(batches),
		Duration: Duration(time.Since(start).Round(time.Millisecond)),
	}
	for _, u := range usages {
		report.PromptTokens += u.PromptTokens
		report.CompletionTokens += u.CompletionTokens
		report.TotalTokens += u.TotalTokens
		report.Attempts += u.Attempts
	}

	r.logger.Info("extraction complete",
		"fields", report.Fields,
		"batches", report.Batches,
		"total_tokens", report.TotalTokens,
		"duration", report.Duration,
	)

	return report, nil
}
