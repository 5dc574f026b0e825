package recall

import (
	"testing"

	"github.com/memvault/memvault/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestKeywordSearchWeights(t *testing.T) {
	memories := []models.Memory{
		{ID: 1, Text: "a walk on the beach", Emotion: "Neutral"},
		{ID: 2, Text: "stayed home", Emotion: "Happy"},
		{ID: 3, Text: "errands all day", Emotion: "Neutral", Location: "the beach"},
	}

	got := KeywordSearch("happy beach", memories)

	// Emotion hit (3) beats location hit (2) beats text hit (1).
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
	assert.Equal(t, 1, got[2].ID)

	assert.Equal(t, 3.0, got[0].RelevanceScore)
	assert.Equal(t, 2.0, got[1].RelevanceScore)
	assert.Equal(t, 1.0, got[2].RelevanceScore)
}

func TestKeywordSearchPeopleMatch(t *testing.T) {
	memories := []models.Memory{
		{ID: 1, Text: "coffee downtown", People: []string{"Maria", "Tom"}},
		{ID: 2, Text: "coffee downtown"},
	}

	got := KeywordSearch("maria", memories)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2.0, got[0].RelevanceScore)
	assert.Equal(t, 0.0, got[1].RelevanceScore)
}

func TestKeywordSearchStableOnTies(t *testing.T) {
	memories := []models.Memory{
		{ID: 10, Text: "beach morning"},
		{ID: 20, Text: "beach evening"},
		{ID: 30, Text: "beach night"},
	}

	got := KeywordSearch("beach", memories)
	assert.Equal(t, []int{10, 20, 30}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestKeywordSearchDoesNotMutateInput(t *testing.T) {
	memories := []models.Memory{{ID: 1, Text: "beach"}}

	KeywordSearch("beach", memories)
	assert.Equal(t, 0.0, memories[0].RelevanceScore)
}
