package analysis

import (
	"cmp"
	"fmt"
	"math"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

// NoPair marks an edge whose reverse has not been found yet
const NoPair = -1

// Edge is one side of a triangle, directed in winding order
type Edge struct {
	Start geometry.Vector3
	End   geometry.Vector3
	// Pair is the index of the reverse edge in the owning EdgeSet, or NoPair
	Pair int
}

// Reverse returns the edge traversed in the opposite direction
func (e Edge) Reverse() Edge {
	return Edge{Start: e.End, End: e.Start, Pair: NoPair}
}

// Length returns the distance between the edge's end points
func (e Edge) Length() float64 {
	return e.End.Sub(e.Start).Length()
}

// String formats the edge as start -> end
func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s", FormatVector(e.Start), FormatVector(e.End))
}

// EdgeSet is an arena of directed edges addressed by stable insertion index
type EdgeSet struct {
	edges []Edge
}

// NewEdgeSet creates an edge set with room for the edges of n triangles
func NewEdgeSet(triangles int) *EdgeSet {
	return &EdgeSet{edges: make([]Edge, 0, 3*triangles)}
}

// AddTriangle records the three directed edges of t
func (s *EdgeSet) AddTriangle(t geometry.Triangle) {
	s.edges = append(s.edges,
		Edge{Start: t.V1, End: t.V2, Pair: NoPair},
		Edge{Start: t.V2, End: t.V3, Pair: NoPair},
		Edge{Start: t.V3, End: t.V1, Pair: NoPair},
	)
}

// Len returns the number of recorded edges
func (s *EdgeSet) Len() int {
	return len(s.edges)
}

// Edge returns the edge at index i
func (s *EdgeSet) Edge(i int) Edge {
	return s.edges[i]
}

// EdgeStats summarizes edge lengths
type EdgeStats struct {
	Count   int     `json:"count" yaml:"count"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Average float64 `json:"average" yaml:"average"`
}

// Stats returns length statistics over all recorded edges
func (s *EdgeSet) Stats() EdgeStats {
	stats := EdgeStats{Count: len(s.edges)}
	if stats.Count == 0 {
		return stats
	}

	stats.Min = math.MaxFloat64
	total := 0.0
	for _, e := range s.edges {
		length := e.Length()
		total += length
		stats.Min = math.Min(stats.Min, length)
		stats.Max = math.Max(stats.Max, length)
	}
	stats.Average = total / float64(stats.Count)
	return stats
}

// compareEdges orders edges lexicographically by start x, y, z then end x, y, z.
// Coordinates compare exactly; cmp.Compare keeps NaN in a consistent position.
func compareEdges(a, b *Edge) int {
	if c := cmp.Compare(a.Start.X, b.Start.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Start.Y, b.Start.Y); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Start.Z, b.Start.Z); c != 0 {
		return c
	}
	if c := cmp.Compare(a.End.X, b.End.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.End.Y, b.End.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.End.Z, b.End.Z)
}
