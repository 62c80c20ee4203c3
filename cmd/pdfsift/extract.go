package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdfsift/pdfsift/internal/config"
	"github.com/pdfsift/pdfsift/internal/document"
	"github.com/pdfsift/pdfsift/internal/extract"
	"github.com/pdfsift/pdfsift/internal/output"
	"github.com/pdfsift/pdfsift/internal/providers"
	"github.com/pdfsift/pdfsift/internal/schema"
)

var (
	extractBatch int
	extractModel string
)

var extractCmd = &cobra.Command{
	Use:   "extract <schema.csv> <document.pdf> <output.csv>",
	Short: "Extract schema fields from a PDF",
	Long: `Extract the fields described by a schema CSV from a PDF document.

The schema CSV needs a header row with field_name, description, kind and
infer columns. Fields are sent to the extraction backend in concurrent
batches; the run fails as a whole if any batch fails or any field is missing
from the merged result. No partial output file is written.

Examples:
  pdfsift extract schema.csv paper.pdf results.csv
  pdfsift extract schema.csv paper.pdf results.csv --batch 10
  pdfsift extract schema.csv paper.pdf results.csv --model google/gemini-2.5-flash`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		schemaPath, pdfPath, outPath := args[0], args[1], args[2]

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		// Flags override config.
		if cmd.Flags().Changed("batch") {
			cfg.Extract.BatchSize = extractBatch
		}
		if extractModel != "" {
			cfg.Provider.Model = extractModel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		apiKey, err := cfg.ResolvedAPIKey()
		if err != nil {
			return err
		}

		fields, err := schema.LoadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("invalid schema: %w", err)
		}
		if len(fields) == 0 {
			return fmt.Errorf("schema %s has no fields", schemaPath)
		}

		doc, err := document.Load(pdfPath)
		if err != nil {
			return err
		}

		client := providers.NewOpenRouterClient(providers.OpenRouterConfig{
			APIKey:       apiKey,
			BaseURL:      cfg.Provider.BaseURL,
			DefaultModel: cfg.Provider.Model,
			Timeout:      time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
			MaxRetries:   cfg.Provider.MaxRetries,
		})

		limiter := providers.NewLimiter(cfg.Provider.RPS)
		runner := extract.NewRunner(extract.RunnerConfig{
			Client:    client,
			Limiter:   limiter,
			Model:     cfg.Provider.Model,
			BatchSize: cfg.Extract.BatchSize,
			Logger:    logger,
		})

		// The request rate is the one knob worth turning while a long run
		// is in flight; other settings apply on the next run.
		cm.OnChange(func(c *config.Config) {
			limiter.SetRate(c.Provider.RPS)
			logger.Info("config reloaded", "rps", c.Provider.RPS)
		})
		cm.WatchConfig()

		payload := extract.Payload{
			Filename: doc.Filename(),
			DataURL:  doc.Payload(),
			Pages:    doc.Pages(),
		}

		report, err := runner.Run(ctx, fields, payload)
		if err != nil {
			var dup *extract.DuplicateResultError
			if errors.As(err, &dup) {
				logger.Error("internal consistency failure", "error", err)
			}
			return err
		}

		if err := output.WriteCSV(outPath, fields, report.Result); err != nil {
			return err
		}
		logger.Info("wrote output", "path", outPath, "rows", report.Fields)

		return output.Print(report)
	},
}

func init() {
	extractCmd.Flags().IntVar(&extractBatch, "batch", extract.DefaultBatchSize, "number of fields per extraction request")
	extractCmd.Flags().StringVar(&extractModel, "model", "", "override the configured model")

	rootCmd.AddCommand(extractCmd)
}
