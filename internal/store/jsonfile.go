package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/memvault/memvault/internal/models"
)

// DefaultFileName is the flat-file store's file under the data dir.
const DefaultFileName = "memories.json"

// JSONFile stores all memories in one JSON array file, rewritten
// wholesale on every mutation. Guarded by a mutex; this store serves
// one process at a time.
type JSONFile struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*JSONFile)(nil)

// NewJSONFile creates a flat-file store at dir/memories.json. The
// directory is created if missing.
func NewJSONFile(dir string) (*JSONFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &JSONFile{path: filepath.Join(dir, DefaultFileName)}, nil
}

// Load reads every memory. A missing file is an empty journal, not an
// error. Defaults are resolved here, once per record.
func (s *JSONFile) Load(_ context.Context) ([]models.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *JSONFile) read() ([]models.Memory, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []models.Memory{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var memories []models.Memory
	if err := json.Unmarshal(data, &memories); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	for i := range memories {
		memories[i].Normalize()
	}
	return memories, nil
}

func (s *JSONFile) write(memories []models.Memory) error {
	data, err := json.MarshalIndent(memories, "", "  ")
	if err != nil {
		return fmt.Errorf("encode memories: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Get returns one memory by id.
func (s *JSONFile) Get(_ context.Context, id int) (models.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memories, err := s.read()
	if err != nil {
		return models.Memory{}, err
	}
	for _, m := range memories {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Memory{}, fmt.Errorf("memory %d: %w", id, ErrNotFound)
}

// Save assigns the next id, appends and rewrites the file.
func (s *JSONFile) Save(_ context.Context, memory models.Memory) (models.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memories, err := s.read()
	if err != nil {
		return models.Memory{}, err
	}

	memory.ID = nextID(memories)
	memory.RelevanceScore = 0
	memory.Normalize()
	memories = append(memories, memory)

	if err := s.write(memories); err != nil {
		return models.Memory{}, err
	}
	return memory, nil
}

// UpdateUnlockDate reschedules a time capsule. An empty date unlocks
// immediately.
func (s *JSONFile) UpdateUnlockDate(_ context.Context, id int, unlockDate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	memories, err := s.read()
	if err != nil {
		return err
	}
	for i := range memories {
		if memories[i].ID == id {
			memories[i].UnlockDate = unlockDate
			return s.write(memories)
		}
	}
	return fmt.Errorf("memory %d: %w", id, ErrNotFound)
}

// Delete removes a memory by id.
func (s *JSONFile) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	memories, err := s.read()
	if err != nil {
		return err
	}
	for i := range memories {
		if memories[i].ID == id {
			memories = append(memories[:i], memories[i+1:]...)
			return s.write(memories)
		}
	}
	return fmt.Errorf("memory %d: %w", id, ErrNotFound)
}

// Close is a no-op for the flat-file store.
func (s *JSONFile) Close() error { return nil }
