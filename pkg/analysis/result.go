package analysis

import (
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

// Result holds the measurements of one mesh
type Result struct {
	// Volume is the enclosed volume in cm³, assuming millimetre input
	Volume float64 `json:"volume" yaml:"volume"`
	// Weight is Volume times the material density
	Weight float64 `json:"weight" yaml:"weight"`
	// BoundingBox holds the x, y and z extents
	BoundingBox  [3]float64 `json:"boundingBox" yaml:"boundingBox"`
	Area         float64    `json:"area" yaml:"area"`
	CenterOfMass [3]float64 `json:"centerOfMass" yaml:"centerOfMass"`
	IsWatertight bool       `json:"isWatertight" yaml:"isWatertight"`

	Name          string     `json:"name,omitempty" yaml:"name,omitempty"`
	Format        stl.Format `json:"format" yaml:"format"`
	Triangles     int        `json:"triangles" yaml:"triangles"`
	SkippedFacets int        `json:"skippedFacets" yaml:"skippedFacets"`
	Edges         EdgeStats  `json:"edges" yaml:"edges"`

	Watertightness Report `json:"-" yaml:"-"`
}
