package mindmap

import (
	"encoding/json"
	"fmt"
	"strings"
)

// edgeColors follow the source categories: blue topics, orange people,
// green emotions, purple locations.
var edgeColors = map[string]string{
	EdgeTopic:    "#4169E1",
	EdgePerson:   "#FFA500",
	EdgeEmotion:  "#32CD32",
	EdgeLocation: "#9370DB",
}

// emotionColors tint nodes by their memory's emotion.
var emotionColors = map[string]string{
	"Happy":       "#55efc4",
	"Sad":         "#74b9ff",
	"Angry":       "#ff7675",
	"Surprised":   "#a29bfe",
	"Anxious":     "#ffeaa7",
	"Peaceful":    "#81ecec",
	"Nostalgic":   "#fab1a0",
	"Excited":     "#fdcb6e",
	"Grateful":    "#55efc4",
	"Confused":    "#636e72",
	"Proud":       "#6c5ce7",
	"Embarrassed": "#e84393",
	"Hopeful":     "#00b894",
	"Neutral":     "#dfe6e9",
}

const defaultNodeColor = "#dfe6e9"

// NodeColor returns the fill color for an emotion.
func NodeColor(emotion string) string {
	if c, ok := emotionColors[emotion]; ok {
		return c
	}
	return defaultNodeColor
}

// JSON renders the graph for machine consumers (MCP, export).
func (g *Graph) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode mind map: %w", err)
	}
	return data, nil
}

// DOT renders the graph in Graphviz dot format. Node positions are
// emitted as pos attributes so a plain neato render matches the seeded
// layout.
func (g *Graph) DOT() string {
	var b strings.Builder
	b.WriteString("graph mindmap {\n")
	b.WriteString("  node [shape=circle style=filled];\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "  %d [label=%q fillcolor=%q width=%.2f pos=\"%.3f,%.3f!\" tooltip=%q];\n",
			n.ID, n.Label, NodeColor(n.Emotion), float64(n.Size)/30, n.X, n.Y,
			fmt.Sprintf("%s | %s", n.Date, n.Emotion))
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %d -- %d [color=%q label=%q];\n",
			e.Source, e.Target, edgeColors[e.Type], e.Label)
	}

	b.WriteString("}\n")
	return b.String()
}
