// ABOUTME: MCP tool handler implementations for the course advisor server
// ABOUTME: Thin adapters from tool requests onto the Advisor surface
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harper/course-advisor/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	advisor *core.Advisor
}

// AskAdvisor handles the ask_advisor tool
func (h *Handlers) AskAdvisor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	if strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("question must not be empty"), nil
	}

	advice, err := h.advisor.Ask(ctx, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ask failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"answer":  advice.Answer,
		"courses": advice.Courses,
	})
}

// SearchCourses handles the search_courses tool
func (h *Handlers) SearchCourses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", 3)
	if maxResults < 1 {
		return mcp.NewToolResultError("max_results must be >= 1"), nil
	}

	results, err := h.advisor.Search(ctx, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"results": results,
	})
}

// GetCourse handles the get_course tool
func (h *Handlers) GetCourse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError("code argument is required and must be a string"), nil
	}

	store := h.advisor.Catalog()
	if store == nil {
		return mcp.NewToolResultError("catalog not loaded"), nil
	}

	course, ok := store.FindByCode(code)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no course with code %q", code)), nil
	}

	return jsonResult(map[string]interface{}{
		"course": course,
	})
}

// ConversationHistory handles the conversation_history tool
func (h *Handlers) ConversationHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 10)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be >= 1"), nil
	}

	turns := h.advisor.Memory().Recent(limit)
	formatted := make([]map[string]interface{}, 0, len(turns))
	for _, turn := range turns {
		formatted = append(formatted, map[string]interface{}{
			"turn_id":   turn.TurnID,
			"timestamp": turn.Timestamp.Format(time.RFC3339),
			"question":  turn.Question,
			"answer":    turn.Answer,
		})
	}

	return jsonResult(map[string]interface{}{
		"turns": formatted,
	})
}

// RebuildIndex handles the rebuild_index tool
func (h *Handlers) RebuildIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.advisor.Rebuild(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rebuild failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"status":  string(result.Status),
		"courses": result.Courses,
	})
}

// jsonResult marshals a response map into a text tool result.
func jsonResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
