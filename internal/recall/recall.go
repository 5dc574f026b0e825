package recall

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/memvault/memvault/internal/embedding"
	"github.com/memvault/memvault/internal/models"
)

// ParamExtractor extracts structured search parameters from a query.
type ParamExtractor interface {
	ExtractRecallParams(ctx context.Context, query string) (models.RecallParams, error)
}

// Ranker re-orders candidate memories by relevance to a query,
// returning memory IDs in ranked order.
type Ranker interface {
	RankMemories(ctx context.Context, query string, candidates []models.Memory) ([]int, error)
}

// rerankLimit caps the candidates sent for final LLM re-ranking.
const rerankLimit = 20

// heuristicEmotions are the query words checked when LLM parameter
// extraction is unavailable. The first one found in the query filters;
// further words are not checked.
var heuristicEmotions = []string{
	"happy", "sad", "angry", "excited", "frustrated", "anxious", "peaceful",
}

// Recaller runs the recall pipeline. params and ranker may be nil
// (offline mode); the embedder is expected to be an embedding.Chain and
// therefore never fails outright.
type Recaller struct {
	embedder embedding.Embedder
	params   ParamExtractor
	ranker   Ranker
	logger   *slog.Logger
}

// New creates a Recaller.
func New(embedder embedding.Embedder, params ParamExtractor, ranker Ranker, logger *slog.Logger) *Recaller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recaller{embedder: embedder, params: params, ranker: ranker, logger: logger}
}

// Recall returns the memories most relevant to the query, best first.
// Each stage that fails degrades to the next cheaper strategy; no stage
// failure ever propagates to the caller. When filtering leaves nothing,
// the keyword scorer runs over the original unfiltered collection so
// the user always gets an answer.
func (r *Recaller) Recall(ctx context.Context, query string, memories []models.Memory) []models.Memory {
	if len(memories) == 0 {
		return []models.Memory{}
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		// Only possible with a bare provider embedder; treat like a
		// missing vector and keep going.
		r.logger.Warn("query embedding failed", "error", err)
		queryVec = nil
	}

	params := r.extractParams(ctx, query)
	filtered := applyFilters(memories, params)

	if len(filtered) == 0 {
		r.logger.Debug("no memories survived filtering, using keyword search",
			"query_len", len(query))
		return KeywordSearch(query, memories)
	}

	ranked := rankByEmbedding(queryVec, filtered)
	return r.rerank(ctx, query, ranked)
}

// extractParams tries the LLM extractor first and degrades to a single
// heuristic: scan the query for a known emotion word, first match wins.
func (r *Recaller) extractParams(ctx context.Context, query string) models.RecallParams {
	if r.params != nil {
		params, err := r.params.ExtractRecallParams(ctx, query)
		if err == nil {
			return params
		}
		r.logger.Warn("recall parameter extraction failed, using heuristic", "error", err)
	}

	lower := strings.ToLower(query)
	for _, emotion := range heuristicEmotions {
		if strings.Contains(lower, emotion) {
			return models.RecallParams{Emotions: []string{emotion}}
		}
	}
	return models.RecallParams{}
}

// applyFilters narrows the collection by extracted emotions, people and
// locations. Filters apply sequentially and conjunctively; an empty
// category skips its filter.
func applyFilters(memories []models.Memory, params models.RecallParams) []models.Memory {
	filtered := memories

	if len(params.Emotions) > 0 {
		filtered = filter(filtered, func(m models.Memory) bool {
			emotion := strings.ToLower(m.Emotion)
			for _, want := range params.Emotions {
				if strings.Contains(emotion, strings.ToLower(want)) {
					return true
				}
			}
			return false
		})
	}

	if len(params.People) > 0 {
		filtered = filter(filtered, func(m models.Memory) bool {
			for _, want := range params.People {
				for _, p := range m.People {
					if strings.EqualFold(p, want) {
						return true
					}
				}
			}
			return false
		})
	}

	if len(params.Locations) > 0 {
		filtered = filter(filtered, func(m models.Memory) bool {
			location := strings.ToLower(m.Location)
			for _, want := range params.Locations {
				if strings.Contains(location, strings.ToLower(want)) {
					return true
				}
			}
			return false
		})
	}

	return filtered
}

func filter(memories []models.Memory, keep func(models.Memory) bool) []models.Memory {
	out := make([]models.Memory, 0, len(memories))
	for _, m := range memories {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

// rankByEmbedding attaches a dot-product relevance score and sorts
// descending (stable). Vectors of different lengths are truncated to
// the shorter one; memories without an embedding score 0.
func rankByEmbedding(queryVec []float32, memories []models.Memory) []models.Memory {
	ranked := make([]models.Memory, len(memories))
	copy(ranked, memories)

	for i := range ranked {
		ranked[i].RelevanceScore = dotProduct(queryVec, ranked[i].Embedding)
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].RelevanceScore > ranked[b].RelevanceScore
	})
	return ranked
}

// dotProduct over the shorter of the two vectors. Deliberately not
// normalized by magnitude; with mixed-provenance vectors the magnitudes
// are not comparable anyway, and the fallback vectors are roughly
// unit-scaled already.
func dotProduct(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// rerank asks the LLM to order the top candidates. Returned IDs outside
// the candidate set are dropped; candidates the ranking does not mention
// are appended in their prior relative order. When no ranker is
// configured or the call fails, the embedding-ranked order stands —
// late-stage failure does not discard the filtering and ranking work
// already done.
func (r *Recaller) rerank(ctx context.Context, query string, ranked []models.Memory) []models.Memory {
	if r.ranker == nil {
		return ranked
	}

	top := ranked
	if len(top) > rerankLimit {
		top = top[:rerankLimit]
	}

	ids, err := r.ranker.RankMemories(ctx, query, top)
	if err != nil {
		r.logger.Warn("final re-ranking failed, keeping embedding order", "error", err)
		return ranked
	}

	byID := make(map[int]models.Memory, len(ranked))
	for _, m := range ranked {
		byID[m.ID] = m
	}

	seen := make(map[int]bool, len(ids))
	out := make([]models.Memory, 0, len(ranked))
	for _, id := range ids {
		if m, ok := byID[id]; ok && !seen[id] {
			out = append(out, m)
			seen[id] = true
		}
	}
	for _, m := range ranked {
		if !seen[m.ID] {
			out = append(out, m)
		}
	}
	return out
}
