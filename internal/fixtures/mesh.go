// Package fixtures builds small meshes and encoded STL buffers for tests.
package fixtures

import (
	"bytes"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

// Box returns the 12 outward-wound triangles of an axis-aligned box with the
// given minimum corner and size.
func Box(min, size geometry.Vector3) []geometry.Triangle {
	x0, y0, z0 := min.X, min.Y, min.Z
	x1, y1, z1 := min.X+size.X, min.Y+size.Y, min.Z+size.Z

	v := geometry.NewVector3
	n := geometry.NewVector3

	return []geometry.Triangle{
		// -Z
		geometry.NewTriangle(n(0, 0, -1), v(x0, y0, z0), v(x0, y1, z0), v(x1, y1, z0)),
		geometry.NewTriangle(n(0, 0, -1), v(x0, y0, z0), v(x1, y1, z0), v(x1, y0, z0)),
		// +Z
		geometry.NewTriangle(n(0, 0, 1), v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1)),
		geometry.NewTriangle(n(0, 0, 1), v(x0, y0, z1), v(x1, y1, z1), v(x0, y1, z1)),
		// -Y
		geometry.NewTriangle(n(0, -1, 0), v(x0, y0, z0), v(x1, y0, z0), v(x1, y0, z1)),
		geometry.NewTriangle(n(0, -1, 0), v(x0, y0, z0), v(x1, y0, z1), v(x0, y0, z1)),
		// +Y
		geometry.NewTriangle(n(0, 1, 0), v(x0, y1, z0), v(x0, y1, z1), v(x1, y1, z1)),
		geometry.NewTriangle(n(0, 1, 0), v(x0, y1, z0), v(x1, y1, z1), v(x1, y1, z0)),
		// -X
		geometry.NewTriangle(n(-1, 0, 0), v(x0, y0, z0), v(x0, y0, z1), v(x0, y1, z1)),
		geometry.NewTriangle(n(-1, 0, 0), v(x0, y0, z0), v(x0, y1, z1), v(x0, y1, z0)),
		// +X
		geometry.NewTriangle(n(1, 0, 0), v(x1, y0, z0), v(x1, y1, z0), v(x1, y1, z1)),
		geometry.NewTriangle(n(1, 0, 0), v(x1, y0, z0), v(x1, y1, z1), v(x1, y0, z1)),
	}
}

// CenteredBox returns a box of the given size centered on the origin
func CenteredBox(size geometry.Vector3) []geometry.Triangle {
	return Box(size.Mul(-0.5), size)
}

// BinarySTL encodes triangles as a binary STL buffer
func BinarySTL(header string, triangles []geometry.Triangle) []byte {
	var buf bytes.Buffer
	if err := stl.WriteBinary(&buf, header, triangles); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// ASCIISTL encodes triangles as an ASCII STL buffer
func ASCIISTL(name string, triangles []geometry.Triangle) []byte {
	var buf bytes.Buffer
	if err := stl.WriteASCII(&buf, name, triangles); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
