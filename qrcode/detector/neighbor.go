package detector

import (
	"math"

	"github.com/ericlevine/qrio/geometry"
)

// Neighbor is a directed edge between the centers of two finder patterns.
// Source and Destination index the pattern slice the graph was built from.
type Neighbor struct {
	Source, Destination int
	From, To            geometry.Region
	// Angle is measured counterclockwise from the positive x axis with y
	// pointing up, in (-π, π].
	Angle    float64
	Distance float64
}

const rightAngleBand = math.Pi / 8

// NewNeighbor measures the edge from one pattern to another.
func NewNeighbor(source, destination int, from, to geometry.Region) Neighbor {
	fx, fy := from.Center()
	tx, ty := to.Center()
	dx, dy := tx-fx, ty-fy
	// fy-ty rather than -dy so that a level edge pointing left is +π
	return Neighbor{
		Source:      source,
		Destination: destination,
		From:        from,
		To:          to,
		Angle:       math.Atan2(fy-ty, dx),
		Distance:    math.Hypot(dx, dy),
	}
}

// RightAngle reports whether the edge is close to horizontal or vertical.
func (n Neighbor) RightAngle() bool {
	a := math.Abs(n.Angle)
	return a <= rightAngleBand ||
		(a >= 3*rightAngleBand && a <= 5*rightAngleBand) ||
		a >= 7*rightAngleBand
}

// Coordinates returns the two endpoints of the edge.
func (n Neighbor) Coordinates() (x1, y1, x2, y2 float64) {
	x1, y1 = n.From.Center()
	x2, y2 = n.To.Center()
	return
}

// Graph holds an edge for every ordered pair of finder patterns with
// distinct centers. It is immutable once built.
type Graph struct {
	patterns []geometry.Region
	edges    []Neighbor
	outgoing [][]int
}

// NewGraph builds the neighbor graph of patterns.
func NewGraph(patterns []geometry.Region) *Graph {
	g := &Graph{
		patterns: append([]geometry.Region(nil), patterns...),
		outgoing: make([][]int, len(patterns)),
	}
	for i, from := range g.patterns {
		fx, fy := from.Center()
		for j, to := range g.patterns {
			if tx, ty := to.Center(); tx == fx && ty == fy {
				continue
			}
			g.outgoing[i] = append(g.outgoing[i], len(g.edges))
			g.edges = append(g.edges, NewNeighbor(i, j, from, to))
		}
	}
	return g
}

// Patterns returns the finder patterns the graph was built from.
func (g *Graph) Patterns() []geometry.Region {
	return g.patterns
}

// Edges returns every edge in construction order.
func (g *Graph) Edges() []Neighbor {
	return g.edges
}

// Neighbors returns the edges leaving pattern i.
func (g *Graph) Neighbors(i int) []Neighbor {
	out := make([]Neighbor, 0, len(g.outgoing[i]))
	for _, e := range g.outgoing[i] {
		out = append(out, g.edges[e])
	}
	return out
}

// RightAngleNeighbors returns the edges leaving pattern i that are close to
// horizontal or vertical.
func (g *Graph) RightAngleNeighbors(i int) []Neighbor {
	var out []Neighbor
	for _, e := range g.outgoing[i] {
		if g.edges[e].RightAngle() {
			out = append(out, g.edges[e])
		}
	}
	return out
}

// SharedCorners returns, in pattern order, every pattern with more than one
// right-angle neighbor.
func (g *Graph) SharedCorners() []int {
	var out []int
	for i := range g.patterns {
		if len(g.RightAngleNeighbors(i)) > 1 {
			out = append(out, i)
		}
	}
	return out
}

// SharedCorner returns the first shared corner.
func (g *Graph) SharedCorner() (int, error) {
	corners := g.SharedCorners()
	if len(corners) == 0 {
		return -1, ErrNoSharedCorner
	}
	return corners[0], nil
}

// Bounds returns pattern i grown to cover its right-angle neighbors.
func (g *Graph) Bounds(i int) geometry.Region {
	bounds := g.patterns[i]
	for _, n := range g.RightAngleNeighbors(i) {
		bounds = bounds.Union(n.To)
	}
	return bounds
}
