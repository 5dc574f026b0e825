//go:build integration

package tools_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/memvault/memvault/internal/embedding"
	"github.com/memvault/memvault/internal/extract"
	"github.com/memvault/memvault/internal/recall"
	"github.com/memvault/memvault/internal/service"
	"github.com/memvault/memvault/internal/store"
	"github.com/memvault/memvault/internal/summary"
	"github.com/memvault/memvault/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger creates a logger for test visibility.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// testDeps builds fully offline services over a tempdir store.
func testDeps(t *testing.T) *tools.Dependencies {
	t.Helper()
	logger := testLogger()

	st, err := store.NewJSONFile(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	extractor := extract.New(nil, logger)
	emb := embedding.NewChain(nil, logger)

	return &tools.Dependencies{
		Journal: service.NewJournalService(st, extractor, emb, nil, nil),
		Recall:  service.NewRecallService(st, recall.New(emb, nil, nil, logger), nil, nil),
		Summary: service.NewSummaryService(st, summary.New(nil, logger), nil, nil),
		Logger:  logger,
	}
}

func connect(t *testing.T, ctx context.Context, deps *tools.Dependencies) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "test-memvault",
		Version: "0.0.1-test",
	}, nil)
	tools.RegisterAll(server, deps)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	go func() {
		server.Run(ctx, serverTransport)
	}()
	time.Sleep(50 * time.Millisecond)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client should connect successfully")
	t.Cleanup(func() { session.Close() })
	return session
}

func callText(t *testing.T, ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content should be TextContent")
	return text.Text, result.IsError
}

func TestToolRegistration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	session := connect(t, ctx, testDeps(t))

	result, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 6)

	names := map[string]bool{}
	for _, tool := range result.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"ping", "capture_memory", "recall_memories", "summarize_memories", "mind_map", "list_memories"} {
		assert.True(t, names[want], "tool %s should be registered", want)
	}
}

func TestPingTool(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	session := connect(t, ctx, testDeps(t))

	text, isErr := callText(t, ctx, session, "ping", map[string]any{})
	assert.False(t, isErr)
	assert.Equal(t, "pong", text)

	text, isErr = callText(t, ctx, session, "ping", map[string]any{"echo": "hello world"})
	assert.False(t, isErr)
	assert.Equal(t, "hello world", text)
}

func TestCaptureAndRecallTools(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	session := connect(t, ctx, testDeps(t))

	text, isErr := callText(t, ctx, session, "capture_memory", map[string]any{
		"text": "so happy at the beach with Maria",
	})
	require.False(t, isErr)
	assert.Contains(t, text, "Memory #1 saved")
	assert.Contains(t, text, "Happy")

	text, isErr = callText(t, ctx, session, "recall_memories", map[string]any{
		"query": "beach",
	})
	require.False(t, isErr)
	assert.Contains(t, text, "Found 1 memories")
	assert.Contains(t, text, "so happy at the beach with Maria")
}

func TestCaptureToolRejectsEmptyText(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	session := connect(t, ctx, testDeps(t))

	text, isErr := callText(t, ctx, session, "capture_memory", map[string]any{"text": "   "})
	assert.True(t, isErr)
	assert.Contains(t, text, "cannot be empty")
}

func TestSummarizeTool(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	session := connect(t, ctx, testDeps(t))

	text, isErr := callText(t, ctx, session, "summarize_memories", map[string]any{"period": "all"})
	require.False(t, isErr)
	assert.Equal(t, "No memories found for this time period.", text)

	_, isErr = callText(t, ctx, session, "summarize_memories", map[string]any{"period": "fortnight"})
	assert.True(t, isErr)
}

func TestMindMapTool(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	session := connect(t, ctx, testDeps(t))

	_, isErr := callText(t, ctx, session, "capture_memory", map[string]any{
		"text": "work presentation went well",
	})
	require.False(t, isErr)

	text, isErr := callText(t, ctx, session, "mind_map", map[string]any{"format": "dot"})
	require.False(t, isErr)
	assert.Contains(t, text, "graph mindmap {")
}
