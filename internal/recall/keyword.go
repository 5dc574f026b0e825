// Package recall retrieves and ranks memories for a natural language
// query. The pipeline degrades stage by stage — LLM parameter
// extraction, embedding similarity, LLM re-ranking — and terminates at a
// pure-local keyword scorer that always produces an answer.
package recall

import (
	"sort"
	"strings"

	"github.com/memvault/memvault/internal/models"
)

// Field weights for keyword scoring. Emotion hits count most: queries
// like "when was I happy" should surface emotion matches over incidental
// text overlap.
const (
	textWeight     = 1
	emotionWeight  = 3
	locationWeight = 2
	peopleWeight   = 2
)

// KeywordSearch scores every memory against the query by term overlap
// and returns them sorted by descending relevance. The sort is stable:
// equal scores preserve input order. Every returned memory carries its
// relevance score.
func KeywordSearch(query string, memories []models.Memory) []models.Memory {
	tokens := strings.Fields(strings.ToLower(query))

	scored := make([]models.Memory, len(memories))
	copy(scored, memories)
	for i := range scored {
		scored[i].RelevanceScore = keywordScore(tokens, &scored[i])
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].RelevanceScore > scored[b].RelevanceScore
	})
	return scored
}

// keywordScore is additive across tokens and fields, no normalization:
// +1 per token found in the text, +3 in the emotion, +2 in the location,
// +2 in the joined people list.
func keywordScore(tokens []string, m *models.Memory) float64 {
	text := strings.ToLower(m.Text)
	emotion := strings.ToLower(m.Emotion)
	location := strings.ToLower(m.Location)
	people := strings.ToLower(strings.Join(m.People, " "))

	score := 0
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			score += textWeight
		}
		if strings.Contains(emotion, tok) {
			score += emotionWeight
		}
		if strings.Contains(location, tok) {
			score += locationWeight
		}
		if strings.Contains(people, tok) {
			score += peopleWeight
		}
	}
	return float64(score)
}
