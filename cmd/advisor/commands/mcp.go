// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to use the course advisor via stdio
package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/course-advisor/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the course advisor as an MCP (Model Context Protocol) server,
exposing ask/search/catalog tools over stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by an agent host)
  advisor mcp

  # Configure in the host's MCP config:
  # {
  #   "mcpServers": {
  #     "course-advisor": {
  #       "command": "advisor",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	advisor, err := newAdvisor(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"Course Advisor",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, advisor)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Course advisor MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
		return nil
	case err := <-serverErr:
		return err
	}
}
