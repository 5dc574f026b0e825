package service

import (
	"context"
	"time"

	"github.com/memvault/memvault/internal/metrics"
	"github.com/memvault/memvault/internal/models"
	"github.com/memvault/memvault/internal/recall"
	"github.com/memvault/memvault/internal/store"
)

// RecallService answers natural language queries over the journal.
type RecallService struct {
	store     store.Store
	recaller  *recall.Recaller
	collector *metrics.Collector
	now       func() time.Time
}

// NewRecallService creates a recall service. now may be nil.
func NewRecallService(s store.Store, recaller *recall.Recaller, collector *metrics.Collector, now func() time.Time) *RecallService {
	if now == nil {
		now = time.Now
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &RecallService{store: s, recaller: recaller, collector: collector, now: now}
}

// Recall returns the available memories ranked against the query.
// Locked time capsules never surface here.
func (s *RecallService) Recall(ctx context.Context, query string) ([]models.Memory, error) {
	defer s.collector.Time(metrics.OpRecall)()

	memories, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	available := models.Available(memories, s.now())
	return s.recaller.Recall(ctx, query, available), nil
}
