package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/memvault/memvault/internal/service"
)

// SummarizeInput defines the input schema for the summarize_memories tool.
type SummarizeInput struct {
	Period string `json:"period,omitempty" jsonschema:"Time window: week, month, 3months, year or all (default week)"`
}

// NewSummarizeHandler creates the summarize_memories tool handler.
func NewSummarizeHandler(deps *Dependencies) mcp.ToolHandlerFor[SummarizeInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SummarizeInput) (*mcp.CallToolResult, any, error) {
		periodName := input.Period
		if periodName == "" {
			periodName = "week"
		}
		period, err := service.ParsePeriod(periodName)
		if err != nil {
			return ErrorResult(err.Error(), "Use week, month, 3months, year or all"), nil, nil
		}

		text, err := deps.Summary.Summarize(ctx, period)
		if err != nil {
			deps.Logger.Error("summarize failed", "error", err)
			return ErrorResult("Failed to summarize memories", "The journal store may be unavailable"), nil, nil
		}
		return TextResult(text), nil, nil
	}
}
