package mindmap

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/memvault/memvault/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edgesOfType(g *Graph, edgeType string) []Edge {
	out := []Edge{}
	for _, e := range g.Edges {
		if e.Type == edgeType {
			out = append(out, e)
		}
	}
	return out
}

func TestBuildSharedTopicEdge(t *testing.T) {
	memories := []models.Memory{
		{ID: 1, Text: "sunday dinner", Emotion: "Happy", Topics: []string{"family"}},
		{ID: 2, Text: "phone call home", Emotion: "Sad", Topics: []string{"family"}},
	}

	g := Build(memories, 0)

	topicEdges := edgesOfType(g, EdgeTopic)
	require.Len(t, topicEdges, 1)
	assert.Equal(t, 1, topicEdges[0].Source)
	assert.Equal(t, 2, topicEdges[0].Target)
	assert.Equal(t, "family", topicEdges[0].Label)
}

func TestBuildAllPairsWithinGroup(t *testing.T) {
	memories := []models.Memory{
		{ID: 1, Emotion: "a", People: []string{"Maria"}},
		{ID: 2, Emotion: "b", People: []string{"Maria"}},
		{ID: 3, Emotion: "c", People: []string{"Maria"}},
	}

	g := Build(memories, 0)
	// 3 memories sharing one person: C(3,2) = 3 edges.
	assert.Len(t, edgesOfType(g, EdgePerson), 3)
}

func TestBuildSkipsUnknownLocation(t *testing.T) {
	memories := []models.Memory{
		{ID: 1, Emotion: "a", Location: "Unknown"},
		{ID: 2, Emotion: "b", Location: "Unknown"},
		{ID: 3, Emotion: "c", Location: "the beach"},
		{ID: 4, Emotion: "d", Location: "the beach"},
	}

	g := Build(memories, 0)
	locEdges := edgesOfType(g, EdgeLocation)
	require.Len(t, locEdges, 1)
	assert.Equal(t, "the beach", locEdges[0].Label)
}

func TestBuildEmotionGroupSampled(t *testing.T) {
	memories := make([]models.Memory, 30)
	for i := range memories {
		memories[i] = models.Memory{ID: i + 1, Emotion: "Happy"}
	}

	g := Build(memories, 1000)
	// At most 10 sampled ids per emotion: C(10,2) = 45 edges.
	assert.Len(t, edgesOfType(g, EdgeEmotion), 45)
}

func TestBuildConnectionCap(t *testing.T) {
	memories := make([]models.Memory, 20)
	for i := range memories {
		memories[i] = models.Memory{ID: i + 1, Emotion: "e", Topics: []string{"work"}}
	}

	g := Build(memories, 0)
	assert.Len(t, g.Edges, DefaultMaxConnections)
}

func TestBuildNodeSizeFromDegree(t *testing.T) {
	memories := []models.Memory{
		{ID: 1, Emotion: "a", Topics: []string{"work"}},
		{ID: 2, Emotion: "b", Topics: []string{"work"}},
		{ID: 3, Emotion: "c"},
	}

	g := Build(memories, 0)

	sizes := map[int]int{}
	for _, n := range g.Nodes {
		sizes[n.ID] = n.Size
	}
	assert.Equal(t, 17, sizes[1])
	assert.Equal(t, 17, sizes[2])
	assert.Equal(t, 15, sizes[3])
}

func TestBuildLabelTruncation(t *testing.T) {
	long := strings.Repeat("x", 80)
	g := Build([]models.Memory{{ID: 1, Text: long, Emotion: "a"}}, 0)

	require.Len(t, g.Nodes, 1)
	assert.Equal(t, strings.Repeat("x", 50)+"...", g.Nodes[0].Label)
}

func TestBuildDeterministic(t *testing.T) {
	memories := make([]models.Memory, 15)
	for i := range memories {
		memories[i] = models.Memory{ID: i + 1, Emotion: "Happy", Topics: []string{"work"}}
	}

	a := Build(memories, 30)
	b := Build(memories, 30)
	assert.Equal(t, a, b)
}

func TestLayoutWithinUnitSquare(t *testing.T) {
	memories := []models.Memory{
		{ID: 1, Emotion: "a", Topics: []string{"work"}},
		{ID: 2, Emotion: "b", Topics: []string{"work"}},
		{ID: 3, Emotion: "c"},
	}

	g := Build(memories, 0)
	for _, n := range g.Nodes {
		assert.GreaterOrEqual(t, n.X, 0.0)
		assert.LessOrEqual(t, n.X, 1.0)
		assert.GreaterOrEqual(t, n.Y, 0.0)
		assert.LessOrEqual(t, n.Y, 1.0)
	}
}

func TestJSONRoundTrips(t *testing.T) {
	g := Build([]models.Memory{
		{ID: 1, Emotion: "Happy", Topics: []string{"work"}},
		{ID: 2, Emotion: "Sad", Topics: []string{"work"}},
	}, 0)

	data, err := g.JSON()
	require.NoError(t, err)

	var decoded Graph
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, g.Nodes, decoded.Nodes)
	assert.Equal(t, g.Edges, decoded.Edges)
}

func TestDOTContainsNodesAndEdges(t *testing.T) {
	g := Build([]models.Memory{
		{ID: 1, Text: "sunday dinner", Emotion: "Happy", Topics: []string{"family"}},
		{ID: 2, Text: "phone call", Emotion: "Sad", Topics: []string{"family"}},
	}, 0)

	dot := g.DOT()
	assert.True(t, strings.HasPrefix(dot, "graph mindmap {"))
	assert.Contains(t, dot, `1 [label="sunday dinner"`)
	assert.Contains(t, dot, `1 -- 2`)
	assert.Contains(t, dot, `label="family"`)
	assert.Contains(t, dot, "#55efc4") // Happy node tint
}

func TestNodeColorFallback(t *testing.T) {
	assert.Equal(t, "#dfe6e9", NodeColor("Bewildered"))
	assert.Equal(t, "#ff7675", NodeColor("Angry"))
}
