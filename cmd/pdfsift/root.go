package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdfsift/pdfsift/internal/output"
	"github.com/pdfsift/pdfsift/version"
)

var (
	cfgFile      string
	outputFormat string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "pdfsift",
	Short: "Extract structured field values from PDFs with an LLM backend",
	Long: `pdfsift pulls structured data out of a PDF document.

You describe the fields you want in a schema CSV (name, description, kind,
infer). pdfsift compiles the schema into a structured-output contract and an
extraction prompt, sends the document to an LLM backend in concurrent
batches, validates every answer against the contract, and writes one CSV row
per field in schema order.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.pdfsift/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "summary output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn, error",
	)

	// Set output format before any command runs; an unknown name is a
	// usage error.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return output.SetFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the command logger honoring --log-level.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
