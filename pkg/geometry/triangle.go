package geometry

// Triangle represents a triangular facet. The vertex order V1, V2, V3 defines
// the facet orientation; Normal is carried as read from the file and never
// used for measurement.
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// Area returns the surface area of the triangle. It does not depend on winding.
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Length() / 2.0
}

// SignedVolume returns the signed volume of the tetrahedron spanned by the
// coordinate origin and the triangle. The sign follows the winding order.
func (t Triangle) SignedVolume() float64 {
	v1, v2, v3 := t.V1, t.V2, t.V3

	v321 := v3.X * v2.Y * v1.Z
	v231 := v2.X * v3.Y * v1.Z
	v312 := v3.X * v1.Y * v2.Z
	v132 := v1.X * v3.Y * v2.Z
	v213 := v2.X * v1.Y * v3.Z
	v123 := v1.X * v2.Y * v3.Z

	return (1.0 / 6.0) * (-v321 + v231 + v312 - v132 - v213 + v123)
}

// TetraCentroid returns the centroid of the tetrahedron formed by the origin
// and the triangle's vertices.
func (t Triangle) TetraCentroid() Vector3 {
	return t.V1.Add(t.V2).Add(t.V3).Mul(1.0 / 4.0)
}

// Vertices returns the three vertices in winding order
func (t Triangle) Vertices() [3]Vector3 {
	return [3]Vector3{t.V1, t.V2, t.V3}
}
