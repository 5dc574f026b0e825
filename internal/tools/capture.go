package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/memvault/memvault/internal/service"
)

// CaptureInput defines the input schema for the capture_memory tool.
type CaptureInput struct {
	Text       string   `json:"text" jsonschema:"required,The memory text to capture"`
	People     []string `json:"people,omitempty" jsonschema:"People involved (overrides automatic detection)"`
	Location   string   `json:"location,omitempty" jsonschema:"Location (overrides automatic detection)"`
	UnlockDate string   `json:"unlock_date,omitempty" jsonschema:"Lock the memory until this date (YYYY-MM-DD)"`
}

// NewCaptureHandler creates the capture_memory tool handler.
func NewCaptureHandler(deps *Dependencies) mcp.ToolHandlerFor[CaptureInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CaptureInput) (*mcp.CallToolResult, any, error) {
		memory, err := deps.Journal.Capture(ctx, service.CaptureInput{
			Text:       input.Text,
			People:     input.People,
			Location:   input.Location,
			UnlockDate: input.UnlockDate,
		})
		if errors.Is(err, service.ErrEmptyText) {
			return ErrorResult("Memory text cannot be empty", "Provide the text to remember"), nil, nil
		}
		if err != nil {
			deps.Logger.Error("capture failed", "error", err)
			return ErrorResult("Failed to save memory", "The data directory may not be writable"), nil, nil
		}

		return TextResult(fmt.Sprintf(
			"Memory #%d saved (emotion: %s, location: %s).",
			memory.ID, memory.Emotion, memory.Location)), nil, nil
	}
}
