package config

import "github.com/pdfsift/pdfsift/internal/extract"

// DefaultConfig returns the built-in configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			APIKey:         "${OPENROUTER_API_KEY}",
			BaseURL:        "https://openrouter.ai/api/v1",
			Model:          "google/gemini-2.5-flash",
			TimeoutSeconds: 120,
			MaxRetries:     3,
			RPS:            2.0,
		},
		Extract: ExtractConfig{
			BatchSize: extract.DefaultBatchSize,
		},
	}
}
