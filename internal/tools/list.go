package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/memvault/memvault/internal/service"
)

// ListInput defines the input schema for the list_memories tool.
type ListInput struct {
	Emotion  string `json:"emotion,omitempty" jsonschema:"Filter by emotion"`
	Person   string `json:"person,omitempty" jsonschema:"Filter by person"`
	FromDate string `json:"from_date,omitempty" jsonschema:"Earliest date, inclusive (YYYY-MM-DD)"`
	ToDate   string `json:"to_date,omitempty" jsonschema:"Latest date, inclusive (YYYY-MM-DD)"`
	Locked   *bool  `json:"locked,omitempty" jsonschema:"true for locked capsules only, false for unlocked only"`
}

// NewListHandler creates the list_memories tool handler.
func NewListHandler(deps *Dependencies) mcp.ToolHandlerFor[ListInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, any, error) {
		memories, err := deps.Journal.List(ctx, service.ListFilter{
			Emotion:  input.Emotion,
			Person:   input.Person,
			FromDate: input.FromDate,
			ToDate:   input.ToDate,
			Locked:   input.Locked,
		})
		if err != nil {
			deps.Logger.Error("list failed", "error", err)
			return ErrorResult("Failed to list memories", "The journal store may be unavailable"), nil, nil
		}
		if len(memories) == 0 {
			return TextResult("No memories found."), nil, nil
		}

		lines := make([]string, 0, len(memories)+1)
		lines = append(lines, fmt.Sprintf("%d memories:", len(memories)))
		for _, m := range memories {
			lines = append(lines, formatMemoryLine(m))
		}
		return TextResult(strings.Join(lines, "\n")), nil, nil
	}
}
