package analysis

import (
	"fmt"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

// FormatTriple formats an x, y, z triple such as a bounding box or center of mass
func FormatTriple(v [3]float64) string {
	return FormatVector(geometry.NewVector3(v[0], v[1], v[2]))
}
