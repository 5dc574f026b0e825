package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestIsFatalAPIError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("connection reset"), false},
		{"credit balance", errors.New("insufficient credit balance"), true},
		{"rate limit", errors.New("rate limit exceeded"), true},
		{"quota exceeded", errors.New("quota exceeded for model"), true},
		{"billing issue", errors.New("billing account inactive"), true},
		{"invalid api key", errors.New("invalid api key"), true},
		{"authentication failed", errors.New("authentication failed"), true},
		{"unauthorized", errors.New("unauthorized request"), true},
		{"401 status", errors.New("HTTP 401: not allowed"), true},
		{"403 status", errors.New("HTTP 403: forbidden"), true},
		{"wrapped error", fmt.Errorf("embed: %w", errors.New("credit balance too low")), true},
		{"404 not fatal", errors.New("HTTP 404: not found"), false},
		{"timeout not fatal", errors.New("context deadline exceeded"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isFatalAPIError(tt.err)
			if got != tt.fatal {
				t.Errorf("isFatalAPIError(%v) = %v, want %v", tt.err, got, tt.fatal)
			}
		})
	}
}

func TestWrapFatalError(t *testing.T) {
	t.Run("wraps fatal error", func(t *testing.T) {
		err := errors.New("invalid api key provided")
		wrapped := wrapFatalError(err)
		if !errors.Is(wrapped, ErrFatalAPI) {
			t.Errorf("expected wrapped error to match ErrFatalAPI")
		}
	})

	t.Run("passes through non-fatal error", func(t *testing.T) {
		err := errors.New("network timeout")
		result := wrapFatalError(err)
		if errors.Is(result, ErrFatalAPI) {
			t.Errorf("non-fatal error should not be wrapped with ErrFatalAPI")
		}
		if result != err {
			t.Errorf("expected original error returned, got %v", result)
		}
	})

	t.Run("nil error", func(t *testing.T) {
		result := wrapFatalError(nil)
		if result != nil {
			t.Errorf("expected nil, got %v", result)
		}
	})
}

// stubChat is a canned-response langchaingo model for parser tests.
type stubChat struct {
	response string
	err      error
}

func (s stubChat) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: s.response}},
	}, nil
}

func (s stubChat) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return s.response, s.err
}

func TestAnalyzeMemoryParsesAndDefaults(t *testing.T) {
	m := NewModelFromClient(stubChat{
		response: `{"emotion": "Happy", "topics": ["Travel", "Food", "Friends", "Extra"]}`,
	}, "stub")

	got, err := m.AnalyzeMemory(context.Background(), "lunch in Lisbon")
	require.NoError(t, err)

	assert.Equal(t, "Happy", got.Emotion)
	// Topics are capped at 3.
	assert.Equal(t, []string{"Travel", "Food", "Friends"}, got.Topics)
	// Missing fields get defaults.
	assert.Equal(t, "Unknown", got.Location)
	assert.Empty(t, got.PeopleMentioned)
	assert.Equal(t, "", got.Context)
}

func TestAnalyzeMemoryStripsCodeFences(t *testing.T) {
	m := NewModelFromClient(stubChat{
		response: "```json\n{\"emotion\": \"Peaceful\", \"location\": \"the lake\"}\n```",
	}, "stub")

	got, err := m.AnalyzeMemory(context.Background(), "an evening by the lake")
	require.NoError(t, err)
	assert.Equal(t, "Peaceful", got.Emotion)
	assert.Equal(t, "the lake", got.Location)
}

func TestAnalyzeMemoryMalformedJSON(t *testing.T) {
	m := NewModelFromClient(stubChat{response: "not json at all"}, "stub")

	_, err := m.AnalyzeMemory(context.Background(), "whatever")
	assert.Error(t, err)
}

func TestRankMemoriesParsesIDs(t *testing.T) {
	m := NewModelFromClient(stubChat{response: `{"memory_ids": [3, 1, 2]}`}, "stub")

	ids, err := m.RankMemories(context.Background(), "beach days", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, ids)
}

func TestExtractRecallParams(t *testing.T) {
	m := NewModelFromClient(stubChat{
		response: `{"emotions": ["happy"], "people": ["Maria"], "locations": [], "time_periods": [], "topics": ["beach"]}`,
	}, "stub")

	params, err := m.ExtractRecallParams(context.Background(), "happy days at the beach with Maria")
	require.NoError(t, err)
	assert.Equal(t, []string{"happy"}, params.Emotions)
	assert.Equal(t, []string{"Maria"}, params.People)
	assert.False(t, params.Empty())
}
