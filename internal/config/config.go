// ABOUTME: Centralized configuration for the course advisor
// ABOUTME: Defaults, optional YAML file overlay, then environment variable overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the advisor system
type Config struct {
	// Data paths
	CatalogPath  string `yaml:"catalog_path"`
	IndexPath    string `yaml:"index_path"`
	ManifestPath string `yaml:"manifest_path"`

	// OpenAI settings
	OpenAIKey      string        `yaml:"-"`
	ChatModel      string        `yaml:"chat_model"`
	EmbeddingModel string        `yaml:"embedding_model"`
	Timeout        time.Duration `yaml:"-"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"-"`

	// Retrieval settings
	VectorDimension int     `yaml:"vector_dimension"`
	TopK            int     `yaml:"top_k"`
	MaxDistance     float64 `yaml:"max_distance"`
	ContentHash     bool    `yaml:"content_hash"`

	// Prompt settings
	SummaryTurns int `yaml:"summary_turns"`
	HistoryTurns int `yaml:"history_turns"`

	// Scraper settings
	ScrapeBaseURL string `yaml:"scrape_base_url"`
}

// Load builds the configuration: defaults first, then an optional YAML file
// (ADVISOR_CONFIG or ./advisor.yaml), then environment variables on top.
func Load() (*Config, error) {
	cfg := defaults()

	path := os.Getenv("ADVISOR_CONFIG")
	if path == "" {
		if _, err := os.Stat("advisor.yaml"); err == nil {
			path = "advisor.yaml"
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.mergeEnv()
	return cfg, cfg.Validate()
}

func defaults() *Config {
	return &Config{
		CatalogPath:     filepath.Join("data", "courses.json"),
		IndexPath:       filepath.Join("data", "course_index.idx"),
		ManifestPath:    filepath.Join("data", "course_index.json"),
		ChatModel:       "gpt-4o-mini",
		EmbeddingModel:  "text-embedding-3-small",
		Timeout:         30 * time.Second,
		MaxRetries:      3,
		RetryDelay:      2 * time.Second,
		VectorDimension: 1536,
		TopK:            3,
		MaxDistance:     0,
		ContentHash:     false,
		SummaryTurns:    2,
		HistoryTurns:    4,
		ScrapeBaseURL:   "https://cs.brown.edu",
	}
}

// mergeFile overlays values from a YAML config file.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %s not found", path)
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// mergeEnv overlays environment variables on top of file values.
func (c *Config) mergeEnv() {
	c.CatalogPath = getEnv("ADVISOR_CATALOG", c.CatalogPath)
	c.IndexPath = getEnv("ADVISOR_INDEX", c.IndexPath)
	c.ManifestPath = getEnv("ADVISOR_MANIFEST", c.ManifestPath)
	c.OpenAIKey = getEnv("OPENAI_API_KEY", c.OpenAIKey)
	c.ChatModel = getEnv("ADVISOR_OPENAI_MODEL", c.ChatModel)
	c.EmbeddingModel = getEnv("ADVISOR_EMBEDDING_MODEL", c.EmbeddingModel)
	c.Timeout = getEnvDuration("OPENAI_TIMEOUT", c.Timeout)
	c.MaxRetries = getEnvInt("OPENAI_MAX_RETRIES", c.MaxRetries)
	c.RetryDelay = getEnvDuration("OPENAI_RETRY_DELAY", c.RetryDelay)
	c.VectorDimension = getEnvInt("VECTOR_DIMENSION", c.VectorDimension)
	c.TopK = getEnvInt("ADVISOR_TOP_K", c.TopK)
	c.MaxDistance = getEnvFloat("ADVISOR_MAX_DISTANCE", c.MaxDistance)
	c.ContentHash = getEnvBool("ADVISOR_CONTENT_HASH", c.ContentHash)
	c.SummaryTurns = getEnvInt("ADVISOR_SUMMARY_TURNS", c.SummaryTurns)
	c.HistoryTurns = getEnvInt("ADVISOR_HISTORY_TURNS", c.HistoryTurns)
	c.ScrapeBaseURL = getEnv("ADVISOR_SCRAPE_URL", c.ScrapeBaseURL)
}

func (c *Config) Validate() error {
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.TopK < 1 {
		return fmt.Errorf("ADVISOR_TOP_K must be >= 1, got %d", c.TopK)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MaxDistance < 0 {
		return fmt.Errorf("ADVISOR_MAX_DISTANCE must be >= 0, got %f", c.MaxDistance)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
