// Package service provides business logic for MemVault operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/memvault/memvault/internal/embedding"
	"github.com/memvault/memvault/internal/extract"
	"github.com/memvault/memvault/internal/metrics"
	"github.com/memvault/memvault/internal/mindmap"
	"github.com/memvault/memvault/internal/models"
	"github.com/memvault/memvault/internal/store"
)

// ErrEmptyText rejects captures with no content.
var ErrEmptyText = errors.New("memory text must not be empty")

// CapsuleLocation marks records created through the time-capsule flow.
const CapsuleLocation = "Time Capsule"

// CaptureInput is a new memory. People and Location, when provided,
// override what the analyzer extracts from the text. A future
// UnlockDate locks the memory until that date.
type CaptureInput struct {
	Text       string
	People     []string
	Location   string
	UnlockDate string
}

// CapsuleInput is a message to the future: the emotion is chosen by the
// author rather than extracted, and the unlock date is required.
type CapsuleInput struct {
	Text       string
	Emotion    string
	UnlockDate string
}

// ListFilter narrows List output. Zero values skip their filter;
// Locked=nil includes both locked and unlocked memories.
type ListFilter struct {
	Emotion  string
	Person   string
	FromDate string // inclusive, "2006-01-02"
	ToDate   string // inclusive, "2006-01-02"
	Locked   *bool
}

// Stats summarizes the journal for the sidebar and the stats command.
type Stats struct {
	TotalMemories     int              `json:"total_memories"`
	MostCommonEmotion string           `json:"most_common_emotion,omitempty"`
	TimeCapsules      int              `json:"time_capsules"`
	LockedCapsules    int              `json:"locked_capsules"`
	Runtime           metrics.Snapshot `json:"runtime"`
}

// JournalService handles memory capture and management.
type JournalService struct {
	store     store.Store
	extractor *extract.Extractor
	embedder  embedding.Embedder
	collector *metrics.Collector
	now       func() time.Time
}

// NewJournalService creates a journal service. now may be nil
// (defaults to time.Now); tests inject a fixed clock.
func NewJournalService(s store.Store, extractor *extract.Extractor, embedder embedding.Embedder, collector *metrics.Collector, now func() time.Time) *JournalService {
	if now == nil {
		now = time.Now
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &JournalService{
		store:     s,
		extractor: extractor,
		embedder:  embedder,
		collector: collector,
		now:       now,
	}
}

// Capture analyzes, embeds and stores a new memory.
func (s *JournalService) Capture(ctx context.Context, input CaptureInput) (models.Memory, error) {
	defer s.collector.Time(metrics.OpCapture)()

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return models.Memory{}, ErrEmptyText
	}

	analysis := s.extractor.Analyze(ctx, text)
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return models.Memory{}, fmt.Errorf("embed memory: %w", err)
	}

	people := input.People
	if len(people) == 0 {
		people = analysis.PeopleMentioned
	}
	location := input.Location
	if location == "" {
		location = analysis.Location
	}

	memory := models.Memory{
		Text:       text,
		Date:       s.now().UTC().Format(time.RFC3339),
		Emotion:    analysis.Emotion,
		People:     people,
		Location:   location,
		Topics:     analysis.Topics,
		Context:    analysis.Context,
		Embedding:  vec,
		UnlockDate: input.UnlockDate,
	}
	return s.store.Save(ctx, memory)
}

// CreateTimeCapsule stores a message to the future. Topics and context
// still come from analysis, but the emotion is the author's choice and
// the location is fixed.
func (s *JournalService) CreateTimeCapsule(ctx context.Context, input CapsuleInput) (models.Memory, error) {
	defer s.collector.Time(metrics.OpCapture)()

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return models.Memory{}, ErrEmptyText
	}
	if input.UnlockDate == "" {
		return models.Memory{}, errors.New("time capsule needs an unlock date")
	}

	analysis := s.extractor.Analyze(ctx, text)
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return models.Memory{}, fmt.Errorf("embed memory: %w", err)
	}

	emotion := input.Emotion
	if emotion == "" {
		emotion = models.DefaultEmotion
	}

	memory := models.Memory{
		Text:          text,
		Date:          s.now().UTC().Format(time.RFC3339),
		Emotion:       emotion,
		People:        []string{},
		Location:      CapsuleLocation,
		Topics:        analysis.Topics,
		Context:       analysis.Context,
		Embedding:     vec,
		UnlockDate:    input.UnlockDate,
		IsTimeCapsule: true,
	}
	return s.store.Save(ctx, memory)
}

// List returns memories matching the filter, in storage order.
func (s *JournalService) List(ctx context.Context, filter ListFilter) ([]models.Memory, error) {
	memories, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]models.Memory, 0, len(memories))
	for _, m := range memories {
		if filter.Emotion != "" && !strings.EqualFold(m.Emotion, filter.Emotion) {
			continue
		}
		if filter.Person != "" && !containsFold(m.People, filter.Person) {
			continue
		}
		if filter.FromDate != "" && m.DateOnly() < filter.FromDate {
			continue
		}
		if filter.ToDate != "" && m.DateOnly() > filter.ToDate {
			continue
		}
		if filter.Locked != nil && m.LockedAt(now) != *filter.Locked {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

// Capsules returns every memory with an unlock date, sorted by unlock
// date, split into still-locked and already-unlocked.
func (s *JournalService) Capsules(ctx context.Context) (locked, unlocked []models.Memory, err error) {
	memories, err := s.store.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	capsules := []models.Memory{}
	for _, m := range memories {
		if m.UnlockDate != "" {
			capsules = append(capsules, m)
		}
	}
	sort.SliceStable(capsules, func(a, b int) bool {
		return capsules[a].UnlockDate < capsules[b].UnlockDate
	})

	now := s.now()
	locked, unlocked = []models.Memory{}, []models.Memory{}
	for _, c := range capsules {
		if c.LockedAt(now) {
			locked = append(locked, c)
		} else {
			unlocked = append(unlocked, c)
		}
	}
	return locked, unlocked, nil
}

// Reschedule moves a capsule's unlock date. An empty date unlocks the
// memory immediately.
func (s *JournalService) Reschedule(ctx context.Context, id int, unlockDate string) error {
	return s.store.UpdateUnlockDate(ctx, id, unlockDate)
}

// Delete removes a memory.
func (s *JournalService) Delete(ctx context.Context, id int) error {
	return s.store.Delete(ctx, id)
}

// Export renders the journal as JSON with embeddings stripped.
func (s *JournalService) Export(ctx context.Context) ([]byte, error) {
	return store.ExportJSON(ctx, s.store)
}

// Import appends memories from a JSON export, assigning fresh ids.
func (s *JournalService) Import(ctx context.Context, data []byte) (int, error) {
	return store.ImportJSON(ctx, s.store, data)
}

// Stats computes journal totals and attaches the runtime metrics
// snapshot.
func (s *JournalService) Stats(ctx context.Context) (Stats, error) {
	memories, err := s.store.Load(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalMemories: len(memories),
		Runtime:       s.collector.Snapshot(),
	}

	counts := map[string]int{}
	order := []string{}
	now := s.now()
	for _, m := range memories {
		if _, ok := counts[m.Emotion]; !ok {
			order = append(order, m.Emotion)
		}
		counts[m.Emotion]++
		if m.UnlockDate != "" {
			stats.TimeCapsules++
			if m.LockedAt(now) {
				stats.LockedCapsules++
			}
		}
	}
	for _, emotion := range order {
		if counts[emotion] > counts[stats.MostCommonEmotion] {
			stats.MostCommonEmotion = emotion
		}
	}
	return stats, nil
}

// MindMap builds the co-occurrence graph over available (unlocked)
// memories.
func (s *JournalService) MindMap(ctx context.Context, maxConnections int) (*mindmap.Graph, error) {
	defer s.collector.Time(metrics.OpMindMap)()

	memories, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	available := models.Available(memories, s.now())
	return mindmap.Build(available, maxConnections), nil
}
