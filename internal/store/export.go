package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/memvault/memvault/internal/models"
)

// ExportJSON renders the whole journal as a JSON array for backup or
// transfer. Embeddings are stripped: they are bulky, provider-specific
// and recomputable.
func ExportJSON(ctx context.Context, s Store) ([]byte, error) {
	memories, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range memories {
		memories[i].Embedding = nil
		memories[i].RelevanceScore = 0
	}

	data, err := json.MarshalIndent(memories, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// ImportJSON appends the memories from a JSON array to the store.
// Incoming ids are discarded; Save assigns fresh sequential ids so an
// import can never collide with existing records. Returns the number of
// memories imported.
func ImportJSON(ctx context.Context, s Store, data []byte) (int, error) {
	var incoming []models.Memory
	if err := json.Unmarshal(data, &incoming); err != nil {
		return 0, fmt.Errorf("decode import: %w", err)
	}

	for i, m := range incoming {
		m.ID = 0
		if _, err := s.Save(ctx, m); err != nil {
			return i, fmt.Errorf("import memory %d of %d: %w", i+1, len(incoming), err)
		}
	}
	return len(incoming), nil
}
