package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	// Ping tool - test/placeholder
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ping",
		Description: "Test tool - responds with pong or echoes input",
	}, NewPingHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "capture_memory",
		Description: "Save a new memory; emotion, topics and location are extracted automatically",
	}, NewCaptureHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recall_memories",
		Description: "Find memories matching a natural language query, ranked by relevance",
	}, NewRecallHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_memories",
		Description: "Write a review of the memories in a time period",
	}, NewSummarizeHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mind_map",
		Description: "Build the graph of connections between memories (shared topics, people, emotions, locations)",
	}, NewMindMapHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_memories",
		Description: "List memories with optional emotion, person, date and lock-state filters",
	}, NewListHandler(deps))
}
