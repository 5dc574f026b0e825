// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"

	"github.com/memvault/memvault/internal/service"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Journal *service.JournalService
	Recall  *service.RecallService
	Summary *service.SummaryService
	Logger  *slog.Logger
}
