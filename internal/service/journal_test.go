package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/memvault/memvault/internal/embedding"
	"github.com/memvault/memvault/internal/extract"
	"github.com/memvault/memvault/internal/models"
	"github.com/memvault/memvault/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newJournal(t *testing.T) *JournalService {
	t.Helper()
	s, err := store.NewJSONFile(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewJournalService(s, extract.New(nil, nil), embedding.Pseudo{}, nil, fixedClock)
}

func TestCaptureRejectsEmptyText(t *testing.T) {
	svc := newJournal(t)

	_, err := svc.Capture(context.Background(), CaptureInput{Text: "   "})
	assert.True(t, errors.Is(err, ErrEmptyText))
}

func TestCaptureAnalyzesAndEmbeds(t *testing.T) {
	svc := newJournal(t)

	got, err := svc.Capture(context.Background(), CaptureInput{
		Text: "so happy at the beach",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "Happy", got.Emotion)
	assert.Equal(t, "the beach", got.Location)
	assert.Equal(t, "2026-08-24T12:00:00Z", got.Date)
	assert.Len(t, got.Embedding, models.PseudoEmbeddingDim)
}

func TestCaptureUserInputOverridesAnalysis(t *testing.T) {
	svc := newJournal(t)

	got, err := svc.Capture(context.Background(), CaptureInput{
		Text:     "so happy at the beach",
		People:   []string{"Maria"},
		Location: "Lisbon",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Maria"}, got.People)
	assert.Equal(t, "Lisbon", got.Location)
}

func TestCreateTimeCapsule(t *testing.T) {
	svc := newJournal(t)

	got, err := svc.CreateTimeCapsule(context.Background(), CapsuleInput{
		Text:       "dear future me",
		Emotion:    "Hopeful",
		UnlockDate: "2027-01-01",
	})
	require.NoError(t, err)

	assert.Equal(t, CapsuleLocation, got.Location)
	assert.Equal(t, "Hopeful", got.Emotion)
	assert.True(t, got.IsTimeCapsule)
	assert.True(t, got.LockedAt(testNow))
}

func TestCreateTimeCapsuleRequiresUnlockDate(t *testing.T) {
	svc := newJournal(t)

	_, err := svc.CreateTimeCapsule(context.Background(), CapsuleInput{Text: "hello"})
	assert.Error(t, err)
}

func TestListFilters(t *testing.T) {
	svc := newJournal(t)
	ctx := context.Background()

	_, err := svc.Capture(ctx, CaptureInput{Text: "glad to see Maria", People: []string{"Maria"}})
	require.NoError(t, err)
	_, err = svc.Capture(ctx, CaptureInput{Text: "upset about work"})
	require.NoError(t, err)
	_, err = svc.CreateTimeCapsule(ctx, CapsuleInput{Text: "later", UnlockDate: "2030-01-01"})
	require.NoError(t, err)

	byEmotion, err := svc.List(ctx, ListFilter{Emotion: "happy"})
	require.NoError(t, err)
	require.Len(t, byEmotion, 1)
	assert.Equal(t, "glad to see Maria", byEmotion[0].Text)

	byPerson, err := svc.List(ctx, ListFilter{Person: "maria"})
	require.NoError(t, err)
	assert.Len(t, byPerson, 1)

	locked := true
	onlyLocked, err := svc.List(ctx, ListFilter{Locked: &locked})
	require.NoError(t, err)
	require.Len(t, onlyLocked, 1)
	assert.True(t, onlyLocked[0].IsTimeCapsule)

	all, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListDateRange(t *testing.T) {
	s, err := store.NewJSONFile(t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	for _, date := range []string{"2026-08-01T10:00:00Z", "2026-08-10T10:00:00Z", "2026-08-20T10:00:00Z"} {
		_, err := s.Save(ctx, models.Memory{Text: "m", Date: date})
		require.NoError(t, err)
	}
	svc := NewJournalService(s, extract.New(nil, nil), embedding.Pseudo{}, nil, fixedClock)

	got, err := svc.List(ctx, ListFilter{FromDate: "2026-08-05", ToDate: "2026-08-15"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-08-10", got[0].DateOnly())
}

func TestCapsulesSplitAndSorted(t *testing.T) {
	svc := newJournal(t)
	ctx := context.Background()

	_, err := svc.CreateTimeCapsule(ctx, CapsuleInput{Text: "far", UnlockDate: "2030-01-01"})
	require.NoError(t, err)
	_, err = svc.CreateTimeCapsule(ctx, CapsuleInput{Text: "past", UnlockDate: "2026-01-01"})
	require.NoError(t, err)
	_, err = svc.CreateTimeCapsule(ctx, CapsuleInput{Text: "near", UnlockDate: "2026-12-01"})
	require.NoError(t, err)
	_, err = svc.Capture(ctx, CaptureInput{Text: "not a capsule"})
	require.NoError(t, err)

	locked, unlocked, err := svc.Capsules(ctx)
	require.NoError(t, err)

	require.Len(t, locked, 2)
	assert.Equal(t, "near", locked[0].Text)
	assert.Equal(t, "far", locked[1].Text)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "past", unlocked[0].Text)
}

func TestRescheduleMovesLockBoundary(t *testing.T) {
	svc := newJournal(t)
	ctx := context.Background()

	capsule, err := svc.CreateTimeCapsule(ctx, CapsuleInput{Text: "soon", UnlockDate: "2030-01-01"})
	require.NoError(t, err)

	require.NoError(t, svc.Reschedule(ctx, capsule.ID, "2026-01-01"))
	locked, unlocked, err := svc.Capsules(ctx)
	require.NoError(t, err)
	assert.Empty(t, locked)
	require.Len(t, unlocked, 1)
}

func TestExportImportRoundTrip(t *testing.T) {
	svc := newJournal(t)
	ctx := context.Background()

	_, err := svc.Capture(ctx, CaptureInput{Text: "original memory"})
	require.NoError(t, err)

	data, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "embedding")

	other := newJournal(t)
	n, err := other.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	imported, err := other.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "original memory", imported[0].Text)
	assert.Equal(t, 1, imported[0].ID)
}

func TestStats(t *testing.T) {
	svc := newJournal(t)
	ctx := context.Background()

	_, err := svc.Capture(ctx, CaptureInput{Text: "so glad today"})
	require.NoError(t, err)
	_, err = svc.Capture(ctx, CaptureInput{Text: "glad again"})
	require.NoError(t, err)
	_, err = svc.CreateTimeCapsule(ctx, CapsuleInput{Text: "later", Emotion: "Hopeful", UnlockDate: "2030-01-01"})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalMemories)
	assert.Equal(t, "Happy", stats.MostCommonEmotion)
	assert.Equal(t, 1, stats.TimeCapsules)
	assert.Equal(t, 1, stats.LockedCapsules)
	assert.Equal(t, int64(3), stats.Runtime.Operations["capture"].Count)
}

func TestMindMapExcludesLockedCapsules(t *testing.T) {
	svc := newJournal(t)
	ctx := context.Background()

	_, err := svc.Capture(ctx, CaptureInput{Text: "work stuff"})
	require.NoError(t, err)
	_, err = svc.CreateTimeCapsule(ctx, CapsuleInput{Text: "secret work plans", UnlockDate: "2030-01-01"})
	require.NoError(t, err)

	g, err := svc.MindMap(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 1)
}
