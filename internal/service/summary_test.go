package service

import (
	"context"
	"testing"

	"github.com/memvault/memvault/internal/embedding"
	"github.com/memvault/memvault/internal/models"
	"github.com/memvault/memvault/internal/recall"
	"github.com/memvault/memvault/internal/store"
	"github.com/memvault/memvault/internal/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input string
		want  Period
	}{
		{"week", PeriodWeek},
		{"Past Week", PeriodWeek},
		{"month", PeriodMonth},
		{"3months", PeriodThreeMonths},
		{"quarter", PeriodThreeMonths},
		{"year", PeriodYear},
		{"all", PeriodAll},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParsePeriod("fortnight")
	assert.Error(t, err)
}

func TestPeriodStart(t *testing.T) {
	assert.Equal(t, "2026-08-17", PeriodWeek.start(testNow))
	assert.Equal(t, "2026-07-24", PeriodMonth.start(testNow))
	assert.Equal(t, "2026-05-24", PeriodThreeMonths.start(testNow))
	assert.Equal(t, "2025-08-24", PeriodYear.start(testNow))
	assert.Equal(t, "", PeriodAll.start(testNow))
}

func newSummaryService(t *testing.T, s store.Store) *SummaryService {
	t.Helper()
	return NewSummaryService(s, summary.New(nil, nil), nil, fixedClock)
}

func TestSummarizeFiltersByPeriod(t *testing.T) {
	s, err := store.NewJSONFile(t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	_, err = s.Save(ctx, models.Memory{Text: "recent", Date: "2026-08-20T10:00:00Z", Emotion: "Happy"})
	require.NoError(t, err)
	_, err = s.Save(ctx, models.Memory{Text: "old", Date: "2026-01-05T10:00:00Z", Emotion: "Sad"})
	require.NoError(t, err)

	svc := newSummaryService(t, s)

	week, err := svc.Summarize(ctx, PeriodWeek)
	require.NoError(t, err)
	assert.Contains(t, week, "**1 memories**")
	assert.Contains(t, week, "**Happy**")

	all, err := svc.Summarize(ctx, PeriodAll)
	require.NoError(t, err)
	assert.Contains(t, all, "**2 memories**")
}

func TestSummarizeEmptyPeriod(t *testing.T) {
	s, err := store.NewJSONFile(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	svc := newSummaryService(t, s)
	got, err := svc.Summarize(context.Background(), PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, summary.EmptyPeriodMessage, got)
}

func TestSummarizeExcludesLockedCapsules(t *testing.T) {
	s, err := store.NewJSONFile(t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	_, err = s.Save(ctx, models.Memory{
		Text: "hidden", Date: "2026-08-20T10:00:00Z",
		Emotion: "Happy", UnlockDate: "2030-01-01",
	})
	require.NoError(t, err)

	svc := newSummaryService(t, s)
	got, err := svc.Summarize(ctx, PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, summary.EmptyPeriodMessage, got)
}

func TestRecallServiceExcludesLockedCapsules(t *testing.T) {
	s, err := store.NewJSONFile(t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	_, err = s.Save(ctx, models.Memory{Text: "beach walk", Date: "2026-08-20T10:00:00Z"})
	require.NoError(t, err)
	_, err = s.Save(ctx, models.Memory{
		Text: "beach secret", Date: "2026-08-21T10:00:00Z", UnlockDate: "2030-01-01",
	})
	require.NoError(t, err)

	svc := NewRecallService(s, recall.New(embedding.Pseudo{}, nil, nil, nil), nil, fixedClock)
	got, err := svc.Recall(ctx, "beach")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "beach walk", got[0].Text)
}
