package mindmap

import (
	"math"
	"math/rand"
)

// Force-directed layout parameters. Tuned for readability at the graph
// sizes a personal journal produces, not for large-graph performance.
const (
	layoutIterations = 50
	layoutCooling    = 0.95
)

// layout positions nodes with a Fruchterman-Reingold style spring pass
// in the unit square. Positions start from the seeded RNG, so the same
// graph lays out the same way every time.
func layout(g *Graph, rng *rand.Rand) {
	n := len(g.Nodes)
	if n == 0 {
		return
	}
	if n == 1 {
		g.Nodes[0].X, g.Nodes[0].Y = 0.5, 0.5
		return
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = rng.Float64()
		ys[i] = rng.Float64()
	}

	index := make(map[int]int, n)
	for i, node := range g.Nodes {
		index[node.ID] = i
	}

	k := math.Sqrt(1.0 / float64(n)) // ideal spring length
	temp := 0.1

	dx := make([]float64, n)
	dy := make([]float64, n)
	for iter := 0; iter < layoutIterations; iter++ {
		for i := range dx {
			dx[i], dy[i] = 0, 0
		}

		// Repulsion between every pair.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				ddx := xs[i] - xs[j]
				ddy := ys[i] - ys[j]
				dist := math.Hypot(ddx, ddy)
				if dist < 1e-9 {
					dist = 1e-9
				}
				force := k * k / dist
				fx := ddx / dist * force
				fy := ddy / dist * force
				dx[i] += fx
				dy[i] += fy
				dx[j] -= fx
				dy[j] -= fy
			}
		}

		// Attraction along edges.
		for _, e := range g.Edges {
			i, okI := index[e.Source]
			j, okJ := index[e.Target]
			if !okI || !okJ || i == j {
				continue
			}
			ddx := xs[i] - xs[j]
			ddy := ys[i] - ys[j]
			dist := math.Hypot(ddx, ddy)
			if dist < 1e-9 {
				continue
			}
			force := dist * dist / k
			fx := ddx / dist * force
			fy := ddy / dist * force
			dx[i] -= fx
			dy[i] -= fy
			dx[j] += fx
			dy[j] += fy
		}

		// Move, capped by temperature.
		for i := 0; i < n; i++ {
			disp := math.Hypot(dx[i], dy[i])
			if disp < 1e-9 {
				continue
			}
			step := math.Min(disp, temp)
			xs[i] += dx[i] / disp * step
			ys[i] += dy[i] / disp * step
			xs[i] = math.Min(1, math.Max(0, xs[i]))
			ys[i] = math.Min(1, math.Max(0, ys[i]))
		}
		temp *= layoutCooling
	}

	for i := range g.Nodes {
		g.Nodes[i].X = xs[i]
		g.Nodes[i].Y = ys[i]
	}
}
