package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	// Create a right triangle with sides 3, 4, 5
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0 // (3 * 4) / 2 = 6

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleAreaIgnoresWinding(t *testing.T) {
	tri := NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(3, 0, 0), NewVector3(0, 4, 0))
	flipped := NewTriangle(Vector3{}, tri.V1, tri.V3, tri.V2)

	if tri.Area() != flipped.Area() {
		t.Errorf("Area failed: winding changed area from %v to %v", tri.Area(), flipped.Area())
	}
}

func TestTriangleSignedVolume(t *testing.T) {
	// Unit right tetrahedron with the origin as fourth corner
	tri := NewTriangle(
		Vector3{},
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
		NewVector3(0, 0, 1),
	)

	volume := tri.SignedVolume()
	expected := 1.0 / 6.0

	if math.Abs(volume-expected) > 1e-12 {
		t.Errorf("SignedVolume failed: expected %v, got %v", expected, volume)
	}

	flipped := NewTriangle(Vector3{}, tri.V1, tri.V3, tri.V2)
	if math.Abs(flipped.SignedVolume()+expected) > 1e-12 {
		t.Errorf("SignedVolume failed: expected %v, got %v", -expected, flipped.SignedVolume())
	}
}

func TestTriangleSignedVolumeMatchesTripleProduct(t *testing.T) {
	tri := NewTriangle(
		Vector3{},
		NewVector3(1.5, -2, 0.25),
		NewVector3(3, 4, -1),
		NewVector3(-2, 0.5, 6),
	)

	expected := tri.V1.Dot(tri.V2.Cross(tri.V3)) / 6.0
	if math.Abs(tri.SignedVolume()-expected) > 1e-12 {
		t.Errorf("SignedVolume failed: expected %v, got %v", expected, tri.SignedVolume())
	}
}

func TestTriangleTetraCentroid(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(4, 0, 0),
		NewVector3(0, 4, 0),
		NewVector3(0, 0, 4),
	)

	center := tri.TetraCentroid()
	expected := NewVector3(1, 1, 1)

	if center != expected {
		t.Errorf("TetraCentroid failed: expected %v, got %v", expected, center)
	}
}
