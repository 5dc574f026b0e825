package models

// Analysis is the structured result of processing a memory's text:
// emotional tone, topics, broader context, people and location. Produced
// either by the LLM extractor or by the local keyword fallback; missing
// fields are defaulted before the value leaves the extractor.
type Analysis struct {
	Emotion         string   `json:"emotion"`
	Topics          []string `json:"topics"`
	Context         string   `json:"context"`
	PeopleMentioned []string `json:"people_mentioned"`
	Location        string   `json:"location"`
}

// Normalize resolves defaulted fields in place.
func (a *Analysis) Normalize() {
	if a.Emotion == "" {
		a.Emotion = DefaultEmotion
	}
	if a.Location == "" {
		a.Location = DefaultLocation
	}
	if a.Topics == nil {
		a.Topics = []string{}
	}
	if a.PeopleMentioned == nil {
		a.PeopleMentioned = []string{}
	}
}

// RecallParams are the search parameters extracted from a natural
// language recall query. Empty categories skip their filter.
type RecallParams struct {
	Emotions    []string `json:"emotions"`
	People      []string `json:"people"`
	Locations   []string `json:"locations"`
	TimePeriods []string `json:"time_periods"`
	Topics      []string `json:"topics"`
}

// Empty reports whether no parameter category carries a value.
func (p RecallParams) Empty() bool {
	return len(p.Emotions) == 0 && len(p.People) == 0 && len(p.Locations) == 0 &&
		len(p.TimePeriods) == 0 && len(p.Topics) == 0
}
