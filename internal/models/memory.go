// Package models defines data structures for the MemVault journal.
package models

import (
	"time"
)

// Default values resolved once when a record is decoded. Downstream code
// can rely on these fields being non-empty instead of re-specifying
// defaults at every access site.
const (
	DefaultEmotion  = "Neutral"
	DefaultLocation = "Unknown"
)

// PseudoEmbeddingDim is the fixed length of the hash-derived fallback
// embedding. Live provider embeddings are larger (provider-defined);
// similarity computation truncates to the shorter of the two.
const PseudoEmbeddingDim = 10

// Memory is a single journaled note record.
type Memory struct {
	ID       int      `json:"id"`
	Text     string   `json:"text"`
	Date     string   `json:"date"` // ISO-8601 creation timestamp, immutable
	Emotion  string   `json:"emotion"`
	People   []string `json:"people,omitempty"`
	Location string   `json:"location"`
	Topics   []string `json:"topics,omitempty"`
	Context  string   `json:"context,omitempty"`

	// Embedding is the similarity vector: 10-dim when produced by the
	// hash fallback, provider-dimensioned otherwise. Stripped on JSON
	// export.
	Embedding []float32 `json:"embedding,omitempty"`

	// UnlockDate, when set to a future date, makes this memory a locked
	// time capsule: hidden from recall, summaries and the mind map
	// until the date passes. Either "2006-01-02" or RFC 3339.
	UnlockDate    string `json:"unlock_date,omitempty"`
	IsTimeCapsule bool   `json:"is_time_capsule,omitempty"`

	// RelevanceScore is attached transiently during recall. It is not
	// part of the record's identity and is never persisted.
	RelevanceScore float64 `json:"relevance_score,omitempty"`
}

// Normalize resolves defaulted fields in place. Called once at
// deserialization so scoring and extraction code never re-specify
// defaults.
func (m *Memory) Normalize() {
	if m.Emotion == "" {
		m.Emotion = DefaultEmotion
	}
	if m.Location == "" {
		m.Location = DefaultLocation
	}
	if m.People == nil {
		m.People = []string{}
	}
	if m.Topics == nil {
		m.Topics = []string{}
	}
}

// UnlockTime parses the unlock date. The second return value is false
// when no unlock date is set or it cannot be parsed.
func (m *Memory) UnlockTime() (time.Time, bool) {
	if m.UnlockDate == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, m.UnlockDate); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", m.UnlockDate); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// LockedAt reports whether the memory is a locked time capsule at the
// given instant. A missing or unparseable unlock date never locks.
func (m *Memory) LockedAt(now time.Time) bool {
	t, ok := m.UnlockTime()
	if !ok {
		return false
	}
	return t.After(now)
}

// Available returns the memories that are not locked at the given
// instant, preserving order. Recall, summaries and the mind map operate
// on this subset only.
func Available(memories []Memory, now time.Time) []Memory {
	out := make([]Memory, 0, len(memories))
	for _, m := range memories {
		if !m.LockedAt(now) {
			out = append(out, m)
		}
	}
	return out
}

// DateOnly returns the first 10 characters of the creation timestamp
// ("2006-01-02"), used for period cutoffs and display.
func (m *Memory) DateOnly() string {
	if len(m.Date) < 10 {
		return m.Date
	}
	return m.Date[:10]
}
