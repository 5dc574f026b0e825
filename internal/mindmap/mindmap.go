// Package mindmap builds a co-occurrence graph over memories: nodes are
// memories, edges connect memories that share a topic, person, emotion
// or location. The graph is laid out with a seeded force-directed pass
// and rendered as DOT or JSON.
package mindmap

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/memvault/memvault/internal/models"
)

// Edge kinds, in the order edge building runs.
const (
	EdgeTopic    = "topic"
	EdgePerson   = "person"
	EdgeEmotion  = "emotion"
	EdgeLocation = "location"
)

// DefaultMaxConnections caps the edge count for visual clarity.
const DefaultMaxConnections = 50

// emotionSampleSize limits same-emotion cliques, which otherwise drown
// out the more meaningful topic and people edges.
const emotionSampleSize = 10

// layoutSeed fixes the sampling and layout RNG so the same collection
// always produces the same picture.
const layoutSeed = 42

// Node is one memory in the graph.
type Node struct {
	ID      int     `json:"id"`
	Label   string  `json:"label"`
	Date    string  `json:"date"`
	Emotion string  `json:"emotion"`
	Size    int     `json:"size"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Edge connects two memories that share an attribute. Label carries the
// shared value ("family", "Maria", ...).
type Edge struct {
	Source int    `json:"source"`
	Target int    `json:"target"`
	Type   string `json:"type"`
	Label  string `json:"label"`
}

// Graph is the laid-out mind map.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// labelLimit truncates long memory texts for node labels.
const labelLimit = 50

// Build constructs the mind map for the given memories.
// maxConnections <= 0 uses DefaultMaxConnections.
func Build(memories []models.Memory, maxConnections int) *Graph {
	if maxConnections <= 0 {
		maxConnections = DefaultMaxConnections
	}
	rng := rand.New(rand.NewSource(layoutSeed))

	g := &Graph{Nodes: make([]Node, 0, len(memories)), Edges: []Edge{}}
	for _, m := range memories {
		g.Nodes = append(g.Nodes, Node{
			ID:      m.ID,
			Label:   truncateLabel(m.Text),
			Date:    m.DateOnly(),
			Emotion: m.Emotion,
		})
	}

	edges := buildEdges(memories, rng)
	if len(edges) > maxConnections {
		edges = sampleEdges(edges, maxConnections, rng)
	}
	g.Edges = edges

	degrees := make(map[int]int)
	for _, e := range g.Edges {
		degrees[e.Source]++
		degrees[e.Target]++
	}
	for i := range g.Nodes {
		g.Nodes[i].Size = 15 + 2*degrees[g.Nodes[i].ID]
	}

	layout(g, rng)
	return g
}

func truncateLabel(text string) string {
	if len(text) > labelLimit {
		return text[:labelLimit] + "..."
	}
	return text
}

// buildEdges emits edges in a fixed category order so the connection cap
// samples over a deterministic sequence. Topic, person and location
// groups connect all pairs; emotion groups are sampled down first.
func buildEdges(memories []models.Memory, rng *rand.Rand) []Edge {
	edges := []Edge{}

	edges = append(edges, groupEdges(EdgeTopic, groupBy(memories, func(m models.Memory) []string {
		return m.Topics
	}))...)

	edges = append(edges, groupEdges(EdgePerson, groupBy(memories, func(m models.Memory) []string {
		return m.People
	}))...)

	emotionGroups := groupBy(memories, func(m models.Memory) []string {
		return []string{m.Emotion}
	})
	for _, grp := range emotionGroups {
		grp.ids = sampleIDs(grp.ids, emotionSampleSize, rng)
	}
	edges = append(edges, groupEdges(EdgeEmotion, emotionGroups)...)

	edges = append(edges, groupEdges(EdgeLocation, groupBy(memories, func(m models.Memory) []string {
		if m.Location == "" || m.Location == models.DefaultLocation {
			return nil
		}
		return []string{m.Location}
	}))...)

	return edges
}

// group collects the memory ids sharing one attribute value.
type group struct {
	label string
	ids   []int
}

// groupBy buckets memory ids by each value the keys func yields,
// preserving first-encounter order of the values.
func groupBy(memories []models.Memory, keys func(models.Memory) []string) []*group {
	byLabel := map[string]*group{}
	order := []*group{}
	for _, m := range memories {
		for _, key := range keys(m) {
			grp, ok := byLabel[key]
			if !ok {
				grp = &group{label: key}
				byLabel[key] = grp
				order = append(order, grp)
			}
			grp.ids = append(grp.ids, m.ID)
		}
	}
	return order
}

// groupEdges connects all id pairs within each group.
func groupEdges(edgeType string, groups []*group) []Edge {
	edges := []Edge{}
	for _, grp := range groups {
		for i := 0; i < len(grp.ids); i++ {
			for j := i + 1; j < len(grp.ids); j++ {
				edges = append(edges, Edge{
					Source: grp.ids[i],
					Target: grp.ids[j],
					Type:   edgeType,
					Label:  grp.label,
				})
			}
		}
	}
	return edges
}

// sampleIDs picks up to n ids without replacement.
func sampleIDs(ids []int, n int, rng *rand.Rand) []int {
	if len(ids) <= n {
		return ids
	}
	shuffled := make([]int, len(ids))
	copy(shuffled, ids)
	rng.Shuffle(len(shuffled), func(a, b int) {
		shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
	})
	return shuffled[:n]
}

// sampleEdges picks n edges without replacement, then restores the
// category ordering so renderings stay grouped.
func sampleEdges(edges []Edge, n int, rng *rand.Rand) []Edge {
	idx := rng.Perm(len(edges))[:n]
	sort.Ints(idx)
	out := make([]Edge, 0, n)
	for _, i := range idx {
		out = append(out, edges[i])
	}
	return out
}

// Summary returns a one-line description for logs and CLI output.
func (g *Graph) Summary() string {
	return fmt.Sprintf("%d memories, %d connections", len(g.Nodes), len(g.Edges))
}
