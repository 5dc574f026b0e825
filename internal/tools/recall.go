package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/memvault/memvault/internal/models"
)

// RecallInput defines the input schema for the recall_memories tool.
type RecallInput struct {
	Query string `json:"query" jsonschema:"required,Natural language description of the memories to find"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results 1-50, default 10"`
}

// NewRecallHandler creates the recall_memories tool handler.
func NewRecallHandler(deps *Dependencies) mcp.ToolHandlerFor[RecallInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RecallInput) (*mcp.CallToolResult, any, error) {
		if input.Query == "" {
			return ErrorResult("Query cannot be empty", "Describe what you want to remember"), nil, nil
		}
		limit := input.Limit
		if limit <= 0 {
			limit = 10
		}
		if limit > 50 {
			return ErrorResult("Limit must be 1-50", "Reduce limit value"), nil, nil
		}

		results, err := deps.Recall.Recall(ctx, input.Query)
		if err != nil {
			deps.Logger.Error("recall failed", "error", err)
			return ErrorResult("Failed to recall memories", "The journal store may be unavailable"), nil, nil
		}
		if len(results) == 0 {
			return TextResult("No memories found."), nil, nil
		}
		if len(results) > limit {
			results = results[:limit]
		}

		lines := make([]string, 0, len(results)+1)
		lines = append(lines, fmt.Sprintf("Found %d memories:", len(results)))
		for _, m := range results {
			lines = append(lines, formatMemoryLine(m))
		}
		return TextResult(strings.Join(lines, "\n")), nil, nil
	}
}

func formatMemoryLine(m models.Memory) string {
	line := fmt.Sprintf("#%d [%s] %s (%s", m.ID, m.DateOnly(), m.Text, m.Emotion)
	if m.Location != "" && m.Location != models.DefaultLocation {
		line += ", at " + m.Location
	}
	if len(m.People) > 0 {
		line += ", with " + strings.Join(m.People, ", ")
	}
	return line + ")"
}
