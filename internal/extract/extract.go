// Package extract tags memory text with emotion, topics, context,
// people and location. The primary path is one structured LLM call; the
// fallback is a local keyword analysis that needs no network at all.
package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/memvault/memvault/internal/models"
)

// Analyzer is the LLM capability the extractor degrades from. A nil
// analyzer means offline mode: the fallback serves every call.
type Analyzer interface {
	AnalyzeMemory(ctx context.Context, text string) (models.Analysis, error)
}

// Extractor runs memory analysis with fallback.
type Extractor struct {
	analyzer Analyzer
	logger   *slog.Logger
}

// New creates an Extractor. analyzer may be nil.
func New(analyzer Analyzer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{analyzer: analyzer, logger: logger}
}

// Analyze processes a memory text. It never fails: any analyzer error
// is logged and answered with the deterministic keyword fallback.
func (e *Extractor) Analyze(ctx context.Context, text string) models.Analysis {
	if e.analyzer != nil {
		analysis, err := e.analyzer.AnalyzeMemory(ctx, text)
		if err == nil {
			return analysis
		}
		e.logger.Warn("memory analysis failed, using keyword fallback", "error", err)
	}
	return Fallback(text)
}

// emotionCategory pairs a label with its keyword bag. Slice order is the
// tie-break: the first category reaching the maximum score wins.
type emotionCategory struct {
	label    string
	keywords []string
}

var emotionCategories = []emotionCategory{
	{"Happy", []string{"happy", "joy", "excited", "glad", "delighted", "pleased"}},
	{"Sad", []string{"sad", "unhappy", "depressed", "down", "blue", "upset"}},
	{"Angry", []string{"angry", "mad", "furious", "annoyed", "irritated"}},
	{"Anxious", []string{"anxious", "worried", "nervous", "stressed"}},
	{"Peaceful", []string{"peaceful", "calm", "relaxed", "tranquil"}},
	{"Nostalgic", []string{"nostalgic", "remember", "memory", "past", "childhood"}},
	{"Grateful", []string{"grateful", "thankful", "appreciate"}},
}

var commonTopics = []string{
	"family", "work", "school", "friends", "travel", "food", "health",
	"hobby", "achievement", "challenge", "celebration", "learning",
}

// locationMarkers are scanned in priority order; the first hit wins.
var locationMarkers = []string{"at", "in", "near", "by"}

// maxLocationLen rejects fragments too long to be a place name.
const maxLocationLen = 30

// Fallback analyzes text with keyword matching only.
func Fallback(text string) models.Analysis {
	topics := fallbackTopics(text)

	context := ""
	if len(topics) > 0 {
		context = "This memory appears to be about " + strings.Join(topics, ", ")
	}

	analysis := models.Analysis{
		Emotion:         fallbackEmotion(text),
		Topics:          topics,
		Context:         context,
		PeopleMentioned: []string{},
		Location:        fallbackLocation(text),
	}
	return analysis
}

// fallbackEmotion scores each category by the number of its keywords
// present in the text. All-zero scores default to Neutral.
func fallbackEmotion(text string) string {
	lower := strings.ToLower(text)

	best := models.DefaultEmotion
	bestScore := 0
	for _, cat := range emotionCategories {
		score := 0
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = cat.label
			bestScore = score
		}
	}
	return best
}

// fallbackTopics substring-matches the fixed topic list, capped at the
// first 3 hits in list order.
func fallbackTopics(text string) []string {
	lower := strings.ToLower(text)

	found := []string{}
	for _, topic := range commonTopics {
		if strings.Contains(lower, topic) {
			found = append(found, strings.ToUpper(topic[:1])+topic[1:])
			if len(found) == 3 {
				break
			}
		}
	}
	return found
}

// fallbackLocation scans for " at ", " in ", " near ", " by " in that
// order and takes the text following the first match up to the next
// period or comma. Fragments of 30+ characters are rejected.
func fallbackLocation(text string) string {
	padded := " " + text + " "
	for _, marker := range locationMarkers {
		token := " " + marker + " "
		i := strings.Index(padded, token)
		if i < 0 {
			continue
		}
		frag := padded[i+len(token):]
		if j := strings.IndexAny(frag, ".,"); j >= 0 {
			frag = frag[:j]
		}
		frag = strings.TrimSpace(frag)
		if len(frag) < maxLocationLen {
			return frag
		}
	}
	return models.DefaultLocation
}
