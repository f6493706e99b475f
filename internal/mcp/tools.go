// ABOUTME: MCP tool definitions and registration for the course advisor server
// ABOUTME: Exposes ask/search/catalog/history/rebuild tools over stdio
package mcp

import (
	"github.com/harper/course-advisor/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, advisor *core.Advisor) *Handlers {
	handlers := &Handlers{advisor: advisor}

	// 1. ask_advisor - Answer a question grounded in retrieved courses
	server.AddTool(mcp.Tool{
		Name:        "ask_advisor",
		Description: "Ask the course advisor a question. Returns a grounded recommendation plus the catalog courses it was based on, and records the exchange in conversation memory.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Free-text question about courses, prerequisites, or planning",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskAdvisor)

	// 2. search_courses - Raw semantic retrieval, no generation
	server.AddTool(mcp.Tool{
		Name:        "search_courses",
		Description: "Semantic search over the course catalog. Returns the nearest courses with their distances, without invoking the language model or touching conversation memory.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of courses to return (default: 3)",
					"default":     3,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchCourses)

	// 3. get_course - Look up one course by code
	server.AddTool(mcp.Tool{
		Name:        "get_course",
		Description: "Get the full catalog record for a course by its code.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"code": map[string]interface{}{
					"type":        "string",
					"description": "Course code, e.g. CSCI 0150",
				},
			},
			Required: []string{"code"},
		},
	}, handlers.GetCourse)

	// 4. conversation_history - Recent turns from session memory
	server.AddTool(mcp.Tool{
		Name:        "conversation_history",
		Description: "List the most recent question/answer turns from this session's conversation memory.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of turns to return (default: 10)",
					"default":     10,
				},
			},
		},
	}, handlers.ConversationHistory)

	// 5. rebuild_index - Force a full re-embed of the catalog
	server.AddTool(mcp.Tool{
		Name:        "rebuild_index",
		Description: "Force a full rebuild of the vector index from the live catalog. Blocking; proportional to catalog size.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.RebuildIndex)

	return handlers
}
