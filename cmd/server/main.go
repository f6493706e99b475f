// ABOUTME: Standalone MCP server entry point with stdio transport
// ABOUTME: Initializes the advisor and registers all MCP tools
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/course-advisor/internal/config"
	"github.com/harper/course-advisor/internal/core"
	"github.com/harper/course-advisor/internal/llm"
	"github.com/harper/course-advisor/internal/mcp"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Fatal("OPENAI_API_KEY is required: embeddings and generation cannot work without it")
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
		log.Fatalf("Failed to create OpenAI client: %v", err)
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
		log.Fatalf("Failed to create advisor: %v", err)
	}
	if err := advisor.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize advisor: %v", err)
	}

	server := mcpserver.NewMCPServer(
		"Course Advisor",
		"0.1.0",
	)

	mcp.RegisterTools(server, advisor)

	log.Println("Course advisor MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
