package analysis

import (
	"errors"
	"math"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

// DefaultDensity is the density of common PLA filament in g/cm³
const DefaultDensity = 1.04

// volumeScale converts cubic millimetres to cubic centimetres
const volumeScale = 1000.0

var (
	// ErrEmptyMesh is returned when no triangle was accumulated
	ErrEmptyMesh = errors.New("empty mesh: no triangles")
	// ErrZeroVolume is returned when the signed volume sums to exactly zero,
	// which leaves the center of mass undefined
	ErrZeroVolume = errors.New("degenerate mesh: zero signed volume")
	// ErrNonFiniteMesh is returned when a coordinate or a derived sum is NaN
	// or infinite
	ErrNonFiniteMesh = errors.New("degenerate mesh: non-finite coordinates or measurements")
)

// Accumulator folds triangles into running measurements. It is not safe for
// concurrent use; each parse owns its own accumulator.
type Accumulator struct {
	density   float64
	triangles int

	volume float64 // signed, in source units³
	area   float64
	bounds geometry.BoundingBox
	// center holds the tetrahedron centroids weighted by signed volume
	center geometry.Vector3

	edges *EdgeSet
}

// NewAccumulator creates an accumulator that weighs volume with density
func NewAccumulator(density float64) *Accumulator {
	return &Accumulator{
		density: density,
		bounds:  geometry.NewBoundingBox(),
		edges:   NewEdgeSet(0),
	}
}

// Add folds one triangle into the running measurements
func (a *Accumulator) Add(t geometry.Triangle) {
	volume := t.SignedVolume()
	a.volume += volume
	a.area += t.Area()
	a.bounds.ExtendTriangle(t)
	a.center = a.center.Add(t.TetraCentroid().Mul(volume))
	a.edges.AddTriangle(t)
	a.triangles++
}

// Triangles returns how many triangles have been added
func (a *Accumulator) Triangles() int {
	return a.triangles
}

// Edges returns the recorded directed edges
func (a *Accumulator) Edges() *EdgeSet {
	return a.edges
}

// Finalize computes the measurement result from the accumulated state. It
// fails with ErrEmptyMesh, ErrNonFiniteMesh or ErrZeroVolume for degenerate
// input.
func (a *Accumulator) Finalize() (*Result, error) {
	if a.triangles == 0 {
		return nil, ErrEmptyMesh
	}
	// NaN compares unequal to zero, so this must run before the volume check
	if !finite(a.volume) || !finite(a.area) || !a.bounds.Min.IsFinite() || !a.bounds.Max.IsFinite() {
		return nil, ErrNonFiniteMesh
	}
	if a.volume == 0 {
		return nil, ErrZeroVolume
	}

	volume := math.Abs(a.volume) / volumeScale
	weight := volume * a.density
	size := a.bounds.Size()
	// Dividing by the signed total cancels the orientation sign
	center := a.center.Mul(1 / a.volume)
	if !finite(weight) || !size.IsFinite() || !center.IsFinite() {
		return nil, ErrNonFiniteMesh
	}
	report := CheckWatertight(a.edges)

	return &Result{
		Volume:         volume,
		Weight:         weight,
		BoundingBox:    size.Array(),
		Area:           a.area,
		CenterOfMass:   center.Array(),
		IsWatertight:   report.Watertight,
		Triangles:      a.triangles,
		Edges:          a.edges.Stats(),
		Watertightness: report,
	}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
