package service

import (
	"context"
	"fmt"
	"time"

	"github.com/memvault/memvault/internal/metrics"
	"github.com/memvault/memvault/internal/models"
	"github.com/memvault/memvault/internal/store"
	"github.com/memvault/memvault/internal/summary"
)

// Period selects the summarization window.
type Period string

const (
	PeriodWeek        Period = "Past Week"
	PeriodMonth       Period = "Past Month"
	PeriodThreeMonths Period = "Past 3 Months"
	PeriodYear        Period = "Past Year"
	PeriodAll         Period = "All Time"
)

// Periods lists the valid summarization windows in menu order.
var Periods = []Period{PeriodWeek, PeriodMonth, PeriodThreeMonths, PeriodYear, PeriodAll}

// ParsePeriod maps CLI shorthand ("week", "3months", ...) and full
// names to a Period.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "week", string(PeriodWeek):
		return PeriodWeek, nil
	case "month", string(PeriodMonth):
		return PeriodMonth, nil
	case "3months", "quarter", string(PeriodThreeMonths):
		return PeriodThreeMonths, nil
	case "year", string(PeriodYear):
		return PeriodYear, nil
	case "all", string(PeriodAll):
		return PeriodAll, nil
	}
	return "", fmt.Errorf("unknown period %q (week, month, 3months, year, all)", s)
}

// start returns the inclusive "2006-01-02" cutoff for the period, or ""
// for all time.
func (p Period) start(now time.Time) string {
	var from time.Time
	switch p {
	case PeriodWeek:
		from = now.AddDate(0, 0, -7)
	case PeriodMonth:
		from = now.AddDate(0, -1, 0)
	case PeriodThreeMonths:
		from = now.AddDate(0, -3, 0)
	case PeriodYear:
		from = now.AddDate(-1, 0, 0)
	default:
		return ""
	}
	return from.Format("2006-01-02")
}

// SummaryService produces period reviews of the journal.
type SummaryService struct {
	store      store.Store
	summarizer *summary.Summarizer
	collector  *metrics.Collector
	now        func() time.Time
}

// NewSummaryService creates a summary service. now may be nil.
func NewSummaryService(s store.Store, summarizer *summary.Summarizer, collector *metrics.Collector, now func() time.Time) *SummaryService {
	if now == nil {
		now = time.Now
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &SummaryService{store: s, summarizer: summarizer, collector: collector, now: now}
}

// Summarize reviews the available memories inside the period. Locked
// time capsules are excluded; the date cutoff compares day precision.
func (s *SummaryService) Summarize(ctx context.Context, period Period) (string, error) {
	defer s.collector.Time(metrics.OpSummary)()

	memories, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}

	now := s.now()
	available := models.Available(memories, now)

	start := period.start(now)
	inPeriod := []models.Memory{}
	for _, m := range available {
		if start == "" || m.DateOnly() >= start {
			inPeriod = append(inPeriod, m)
		}
	}

	return s.summarizer.Summarize(ctx, string(period), inPeriod), nil
}
