package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlmeasure/internal/fixtures"
	"github.com/philipparndt/stlmeasure/pkg/analysis"
	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

func edgeSetOf(triangles []geometry.Triangle) *analysis.EdgeSet {
	set := analysis.NewEdgeSet(len(triangles))
	for _, t := range triangles {
		set.AddTriangle(t)
	}
	return set
}

func unitCube() []geometry.Triangle {
	return fixtures.Box(geometry.Vector3{}, geometry.NewVector3(1, 1, 1))
}

func TestCheckWatertightClosedCube(t *testing.T) {
	set := edgeSetOf(unitCube())
	require.Equal(t, 36, set.Len())

	report := analysis.CheckWatertight(set)
	assert.True(t, report.Watertight)
	assert.Equal(t, analysis.ReasonClosed, report.Reason)
	assert.Equal(t, -1, report.EdgeIndex)

	// Every edge is paired with its reverse, and pairing is mutual
	for i := 0; i < set.Len(); i++ {
		e := set.Edge(i)
		require.NotEqual(t, analysis.NoPair, e.Pair, "edge %d unpaired", i)
		partner := set.Edge(e.Pair)
		assert.Equal(t, i, partner.Pair)
		assert.Equal(t, e.Start, partner.End)
		assert.Equal(t, e.End, partner.Start)
	}
}

func TestCheckWatertightMissingTriangle(t *testing.T) {
	cube := unitCube()
	for skip := range cube {
		open := append(append([]geometry.Triangle(nil), cube[:skip]...), cube[skip+1:]...)

		report := analysis.CheckWatertight(edgeSetOf(open))
		assert.False(t, report.Watertight, "without triangle %d", skip)
		assert.Equal(t, analysis.ReasonBoundaryEdge, report.Reason)
		assert.GreaterOrEqual(t, report.EdgeIndex, 0)
	}
}

func TestCheckWatertightDuplicateTriangle(t *testing.T) {
	cube := unitCube()
	cube = append(cube, cube[3])

	report := analysis.CheckWatertight(edgeSetOf(cube))
	assert.False(t, report.Watertight)
	assert.Equal(t, analysis.ReasonDuplicateEdge, report.Reason)
}

func TestCheckWatertightFlippedTriangle(t *testing.T) {
	cube := unitCube()
	cube[5] = geometry.NewTriangle(cube[5].Normal, cube[5].V1, cube[5].V3, cube[5].V2)

	report := analysis.CheckWatertight(edgeSetOf(cube))
	assert.False(t, report.Watertight)
	assert.Equal(t, analysis.ReasonDuplicateEdge, report.Reason)
}

func TestCheckWatertightFullyReversedCube(t *testing.T) {
	var reversed []geometry.Triangle
	for _, tri := range unitCube() {
		reversed = append(reversed, geometry.NewTriangle(tri.Normal, tri.V1, tri.V3, tri.V2))
	}

	assert.True(t, analysis.CheckWatertight(edgeSetOf(reversed)).Watertight)
}

func TestCheckWatertightEmpty(t *testing.T) {
	report := analysis.CheckWatertight(analysis.NewEdgeSet(0))
	assert.False(t, report.Watertight)
	assert.Equal(t, analysis.ReasonEmpty, report.Reason)
}

func TestCheckWatertightDegenerateEdge(t *testing.T) {
	p := geometry.NewVector3(1, 1, 1)
	tri := geometry.NewTriangle(geometry.Vector3{}, p, p, geometry.NewVector3(2, 2, 2))

	report := analysis.CheckWatertight(edgeSetOf([]geometry.Triangle{tri}))
	assert.False(t, report.Watertight)
}

func TestCheckWatertightIsRepeatable(t *testing.T) {
	set := edgeSetOf(unitCube())
	first := analysis.CheckWatertight(set)
	second := analysis.CheckWatertight(set)
	assert.Equal(t, first, second)
}

func TestCheckWatertightManyBoxes(t *testing.T) {
	var mesh []geometry.Triangle
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			for k := 0; k < 25; k++ {
				min := geometry.NewVector3(float64(i)*2, float64(j)*2, float64(k)*2)
				mesh = append(mesh, fixtures.Box(min, geometry.NewVector3(1, 1, 1))...)
			}
		}
	}
	require.Len(t, mesh, 120000)

	set := edgeSetOf(mesh)
	assert.True(t, analysis.CheckWatertight(set).Watertight)

	// Removing one triangle anywhere breaks it
	set = edgeSetOf(mesh[:len(mesh)-1])
	assert.False(t, analysis.CheckWatertight(set).Watertight)
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "closed", analysis.ReasonClosed.String())
	assert.Equal(t, "boundary edge", analysis.ReasonBoundaryEdge.String())
	assert.Equal(t, "duplicate edge", analysis.ReasonDuplicateEdge.String())
	assert.Equal(t, "empty", analysis.ReasonEmpty.String())
}

func TestEdgeStats(t *testing.T) {
	tri := geometry.NewTriangle(
		geometry.Vector3{},
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(3, 0, 0),
		geometry.NewVector3(0, 4, 0),
	)
	stats := edgeSetOf([]geometry.Triangle{tri}).Stats()

	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 3.0, stats.Min, 1e-12)
	assert.InDelta(t, 5.0, stats.Max, 1e-12)
	assert.InDelta(t, 4.0, stats.Average, 1e-12)
}
