package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/memvault/memvault/internal/models"
	"github.com/tmc/langchaingo/llms"
)

const analyzeSystemPrompt = `You are an expert at analyzing personal memories and extracting relevant information.
Given a personal memory text, identify the emotional tone, key topics, people mentioned,
potential locations, and provide broader context to the memory.
Respond with a JSON object with keys: emotion (string), topics (array of strings, at most 3),
context (string), people_mentioned (array of strings), location (string).`

// AnalyzeMemory extracts emotion, topics, context, people and location
// from a memory text with one structured-output chat call. Missing
// fields in the response are defaulted, never treated as errors.
func (m *Model) AnalyzeMemory(ctx context.Context, text string) (models.Analysis, error) {
	raw, err := m.GenerateWithSystem(ctx, analyzeSystemPrompt, text, llms.WithJSONMode())
	if err != nil {
		return models.Analysis{}, err
	}

	var out models.Analysis
	if err := json.Unmarshal(stripFences(raw), &out); err != nil {
		return models.Analysis{}, fmt.Errorf("parse analysis: %w", err)
	}
	out.Normalize()
	if len(out.Topics) > 3 {
		out.Topics = out.Topics[:3]
	}
	return out, nil
}

const recallParamsSystemPrompt = `You are an expert at understanding memory recall queries.
Given a query about someone's memories, extract key search parameters like:
- Emotions mentioned (happy, sad, etc.)
- People mentioned
- Time periods mentioned (last week, childhood, etc.)
- Locations mentioned
- Topics or themes mentioned
Respond with a JSON object with keys: emotions, people, time_periods, locations, topics
(each an array of strings, empty when not mentioned).`

// ExtractRecallParams extracts structured search parameters from a
// natural language recall query.
func (m *Model) ExtractRecallParams(ctx context.Context, query string) (models.RecallParams, error) {
	raw, err := m.GenerateWithSystem(ctx, recallParamsSystemPrompt, query, llms.WithJSONMode())
	if err != nil {
		return models.RecallParams{}, err
	}

	var out models.RecallParams
	if err := json.Unmarshal(stripFences(raw), &out); err != nil {
		return models.RecallParams{}, fmt.Errorf("parse recall params: %w", err)
	}
	return out, nil
}

const rankSystemPrompt = `You are an expert at helping users recall their personal memories.
Given a query and a set of memories, select and rank the most relevant memories
that best answer the query. Return a JSON object of the form
{"memory_ids": [..]} with memory IDs in order of relevance.`

// rankCandidate is the trimmed view of a memory sent for re-ranking.
type rankCandidate struct {
	ID       int      `json:"id"`
	Text     string   `json:"text"`
	Date     string   `json:"date"`
	Emotion  string   `json:"emotion"`
	People   []string `json:"people"`
	Location string   `json:"location"`
}

// RankMemories asks the model to order the candidate memories by
// relevance to the query and returns the ranked IDs. IDs the model
// invents are the caller's problem to drop.
func (m *Model) RankMemories(ctx context.Context, query string, candidates []models.Memory) ([]int, error) {
	trimmed := make([]rankCandidate, len(candidates))
	for i, c := range candidates {
		trimmed[i] = rankCandidate{
			ID:       c.ID,
			Text:     c.Text,
			Date:     c.Date,
			Emotion:  c.Emotion,
			People:   c.People,
			Location: c.Location,
		}
	}
	payload, err := json.Marshal(trimmed)
	if err != nil {
		return nil, fmt.Errorf("marshal candidates: %w", err)
	}

	user := fmt.Sprintf("Query: %s\n\nMemories: %s", query, payload)
	raw, err := m.GenerateWithSystem(ctx, rankSystemPrompt, user, llms.WithJSONMode())
	if err != nil {
		return nil, err
	}

	var out struct {
		MemoryIDs []int `json:"memory_ids"`
	}
	if err := json.Unmarshal(stripFences(raw), &out); err != nil {
		return nil, fmt.Errorf("parse ranking: %w", err)
	}
	return out.MemoryIDs, nil
}

const summarySystemPrompt = `You are an expert at summarizing personal memories and finding insights.
Given a collection of personal memories from the %s, create a thoughtful summary that:
1. Identifies major themes and patterns
2. Notes emotional trends
3. Highlights significant events or moments
4. Provides gentle insights that might be valuable to the person
5. Maintains a warm, supportive tone
Write in second person (you/your) as if speaking directly to the memory owner.`

// SummarizeJournal generates a narrative summary of the formatted
// memory blocks for the given period label.
func (m *Model) SummarizeJournal(ctx context.Context, combined, period string) (string, error) {
	system := fmt.Sprintf(summarySystemPrompt, period)
	return m.GenerateWithSystem(ctx, system, combined)
}

// stripFences removes a markdown code fence around a JSON payload.
// JSON mode usually prevents fences, but Ollama models are sloppy.
func stripFences(s string) []byte {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return []byte(strings.TrimSpace(s))
}
