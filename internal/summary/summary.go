// Package summary turns a set of memories into a period review: an LLM
// narrative when a model is available, a deterministic template
// otherwise.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/memvault/memvault/internal/models"
)

// Narrator is the LLM capability behind the narrative summary. A nil
// narrator means offline mode: the template serves every call.
type Narrator interface {
	SummarizeJournal(ctx context.Context, combined, period string) (string, error)
}

// Summarizer produces period summaries with fallback.
type Summarizer struct {
	narrator Narrator
	logger   *slog.Logger
}

// New creates a Summarizer. narrator may be nil.
func New(narrator Narrator, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{narrator: narrator, logger: logger}
}

// EmptyPeriodMessage is returned when there is nothing to summarize.
const EmptyPeriodMessage = "No memories found for this time period."

// Summarize writes a review of the memories for the named period
// ("Past Week", "All Time", ...). Never fails: narrator errors are
// logged and answered by the template summary.
func (s *Summarizer) Summarize(ctx context.Context, period string, memories []models.Memory) string {
	if len(memories) == 0 {
		return EmptyPeriodMessage
	}

	if s.narrator != nil {
		text, err := s.narrator.SummarizeJournal(ctx, FormatMemories(memories), period)
		if err == nil {
			return text
		}
		s.logger.Warn("narrative summary failed, using template", "error", err)
	}
	return FallbackSummary(period, memories)
}

// FormatMemories renders memories as Date/Content/Emotion blocks joined
// by "---" separators, the form the narrative prompt expects. People
// and location lines appear only when they carry information.
func FormatMemories(memories []models.Memory) string {
	blocks := make([]string, 0, len(memories))
	for _, m := range memories {
		lines := []string{
			"Date: " + m.DateOnly(),
			"Content: " + m.Text,
			"Emotion: " + m.Emotion,
		}
		if len(m.People) > 0 {
			lines = append(lines, "People: "+strings.Join(m.People, ", "))
		}
		if m.Location != "" && m.Location != models.DefaultLocation {
			lines = append(lines, "Location: "+m.Location)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n---\n")
}

// counter tallies string occurrences while remembering first-encounter
// order, so ties resolve the same way on every run.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns up to n keys by descending count, encounter order on ties.
func (c *counter) top(n int) []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(a, b int) bool {
		return c.counts[keys[a]] > c.counts[keys[b]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// FallbackSummary builds the deterministic template review: memory
// count, dominant emotion, up to three secondary emotions, up to three
// named locations and people, and a closing sentiment keyed off the
// dominant emotion.
func FallbackSummary(period string, memories []models.Memory) string {
	if len(memories) == 0 {
		return EmptyPeriodMessage
	}

	emotions := newCounter()
	locations := newCounter()
	people := newCounter()
	for _, m := range memories {
		emotion := m.Emotion
		if emotion == "" {
			emotion = models.DefaultEmotion
		}
		emotions.add(emotion)
		if m.Location != "" && m.Location != models.DefaultLocation {
			locations.add(m.Location)
		}
		for _, p := range m.People {
			people.add(p)
		}
	}

	dominant := emotions.top(1)[0]

	secondary := ""
	if len(emotions.order) > 1 {
		others := make([]string, 0, 3)
		for _, e := range emotions.order {
			if e != dominant {
				others = append(others, e)
				if len(others) == 3 {
					break
				}
			}
		}
		secondary = "Other emotions you experienced include " + strings.Join(others, ", ") + "."
	}

	locationText := "various places"
	if locs := locations.top(3); len(locs) > 0 {
		locationText = strings.Join(locs, ", ")
	}

	peopleText := ""
	if frequent := people.top(3); len(frequent) > 0 {
		peopleText = "You shared these moments with " + strings.Join(frequent, ", ") + "."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### Your %s in Review\n\n", period)
	fmt.Fprintf(&b, "During this period, you recorded **%d memories**.\n\n", len(memories))
	fmt.Fprintf(&b, "**Emotional Trends:**\nYou primarily felt **%s** during this time. %s\n\n", dominant, secondary)
	fmt.Fprintf(&b, "**Places & People:**\nYour memories took place in %s. %s\n\n", locationText, peopleText)
	fmt.Fprintf(&b, "**Reflection:**\nThis %s appears to have been a time of %s. "+
		"Remember that each memory, whether positive or challenging, contributes to your personal journey.",
		strings.ToLower(period), sentiment(dominant))
	return b.String()
}

// sentiment maps the dominant emotion to one of four closing phrases.
func sentiment(emotion string) string {
	switch emotion {
	case "Happy", "Excited", "Grateful", "Peaceful":
		return "joy and positivity"
	case "Nostalgic", "Hopeful":
		return "reflection and introspection"
	case "Sad", "Angry", "Anxious":
		return "challenges and growth"
	default:
		return "various experiences"
	}
}
