package analysis

import "slices"

// Reason explains a watertightness verdict
type Reason int

const (
	// ReasonClosed means every edge has exactly one reverse partner
	ReasonClosed Reason = iota
	// ReasonEmpty means there were no edges to check
	ReasonEmpty
	// ReasonDuplicateEdge means two triangles share an edge in the same direction
	ReasonDuplicateEdge
	// ReasonBoundaryEdge means an edge has no opposing triangle
	ReasonBoundaryEdge
)

// String returns a short description of the reason
func (r Reason) String() string {
	switch r {
	case ReasonClosed:
		return "closed"
	case ReasonEmpty:
		return "empty"
	case ReasonDuplicateEdge:
		return "duplicate edge"
	case ReasonBoundaryEdge:
		return "boundary edge"
	default:
		return "unknown"
	}
}

// Report is the outcome of CheckWatertight
type Report struct {
	Watertight bool
	Reason     Reason
	// EdgeIndex points at the offending edge in the EdgeSet, or -1
	EdgeIndex int
	// Edge is the offending edge when EdgeIndex >= 0
	Edge Edge
}

// CheckWatertight decides whether the edges form a closed, consistently
// oriented surface: no directed edge may appear twice and every edge must be
// matched by its reverse.
//
// The edges themselves stay in insertion order. A separate index slice is
// sorted and searched, which keeps the check at O(n log n). Partner indices
// found along the way are stored in the arena's Pair fields.
func CheckWatertight(s *EdgeSet) Report {
	n := len(s.edges)
	if n == 0 {
		return Report{Reason: ReasonEmpty, EdgeIndex: -1}
	}

	for i := range s.edges {
		s.edges[i].Pair = NoPair
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return compareEdges(&s.edges[a], &s.edges[b])
	})

	for k := 1; k < n; k++ {
		if compareEdges(&s.edges[order[k-1]], &s.edges[order[k]]) == 0 {
			return s.failure(ReasonDuplicateEdge, order[k])
		}
	}

	// Walking in sorted order means any reverse edge that sorts earlier has
	// already claimed this edge, so only the suffix needs searching.
	for k, i := range order {
		edge := &s.edges[i]
		if edge.Pair != NoPair {
			continue
		}

		reverse := edge.Reverse()
		rest := order[k+1:]
		j, found := slices.BinarySearchFunc(rest, &reverse, func(idx int, target *Edge) int {
			return compareEdges(&s.edges[idx], target)
		})
		if !found {
			return s.failure(ReasonBoundaryEdge, i)
		}

		partner := rest[j]
		edge.Pair = partner
		s.edges[partner].Pair = i
	}

	return Report{Watertight: true, Reason: ReasonClosed, EdgeIndex: -1}
}

func (s *EdgeSet) failure(reason Reason, index int) Report {
	return Report{Reason: reason, EdgeIndex: index, Edge: s.edges[index]}
}
