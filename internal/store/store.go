// Package store persists memory records. Two implementations satisfy
// the same contract: a flat JSON file and a single-file SQLite
// database. Both are single-user stores; neither attempts durability
// beyond an ordinary file write.
package store

import (
	"context"
	"errors"

	"github.com/memvault/memvault/internal/models"
)

// ErrNotFound indicates the requested memory does not exist.
// Use errors.Is() to check for it in calling code.
var ErrNotFound = errors.New("memory not found")

// Store is the persistence contract. Save assigns the next id
// (max existing + 1) and returns the stored record. Load returns
// records with defaults already resolved.
type Store interface {
	Load(ctx context.Context) ([]models.Memory, error)
	Get(ctx context.Context, id int) (models.Memory, error)
	Save(ctx context.Context, memory models.Memory) (models.Memory, error)
	UpdateUnlockDate(ctx context.Context, id int, unlockDate string) error
	Delete(ctx context.Context, id int) error
	Close() error
}

// nextID computes the id Save assigns: one past the current maximum.
func nextID(memories []models.Memory) int {
	max := 0
	for _, m := range memories {
		if m.ID > max {
			max = m.ID
		}
	}
	return max + 1
}
