// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Advisor construction from config plus small formatting helpers
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/harper/course-advisor/internal/config"
	"github.com/harper/course-advisor/internal/core"
	"github.com/harper/course-advisor/internal/llm"
)

// loadConfig loads .env (if present) and the layered configuration.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newAdvisor builds and initializes an Advisor from configuration. The
// OpenAI client serves as both embedder and generator.
func newAdvisor(ctx context.Context, cfg *config.Config) (*core.Advisor, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	client, err := llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}

	advisor, err := core.NewAdvisor(core.Options{
		CatalogPath:  cfg.CatalogPath,
		IndexPath:    cfg.IndexPath,
		ManifestPath: cfg.ManifestPath,
		Dimension:    cfg.VectorDimension,
		ContentHash:  cfg.ContentHash,
		TopK:         cfg.TopK,
		SummaryTurns: cfg.SummaryTurns,
		HistoryTurns: cfg.HistoryTurns,
		MaxDistance:  cfg.MaxDistance,
		Embedder:     client,
		Generator:    client,
	})
	if err != nil {
		return nil, err
	}

	if err := advisor.Initialize(ctx); err != nil {
		return nil, err
	}
	return advisor, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

// orNotListed substitutes a placeholder for empty optional fields.
func orNotListed(s string) string {
	if s == "" {
		return "(not listed)"
	}
	return s
}

// fileExists reports whether a path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
