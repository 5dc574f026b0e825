package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MindMapInput defines the input schema for the mind_map tool.
type MindMapInput struct {
	Format         string `json:"format,omitempty" jsonschema:"Output format: json or dot (default json)"`
	MaxConnections int    `json:"max_connections,omitempty" jsonschema:"Connection cap (default 50)"`
}

// NewMindMapHandler creates the mind_map tool handler.
func NewMindMapHandler(deps *Dependencies) mcp.ToolHandlerFor[MindMapInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input MindMapInput) (*mcp.CallToolResult, any, error) {
		graph, err := deps.Journal.MindMap(ctx, input.MaxConnections)
		if err != nil {
			deps.Logger.Error("mind map failed", "error", err)
			return ErrorResult("Failed to build mind map", "The journal store may be unavailable"), nil, nil
		}

		switch input.Format {
		case "dot":
			return TextResult(graph.DOT()), nil, nil
		case "json", "":
			data, err := graph.JSON()
			if err != nil {
				return ErrorResult("Failed to encode mind map", ""), nil, nil
			}
			return TextResult(string(data)), nil, nil
		default:
			return ErrorResult("Unknown format "+input.Format, "Use json or dot"), nil, nil
		}
	}
}
