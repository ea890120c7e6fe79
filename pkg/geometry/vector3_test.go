package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Mul(t *testing.T) {
	result := NewVector3(1, -2, 0.5).Mul(4)

	expected := NewVector3(4, -8, 2)
	if result != expected {
		t.Errorf("Mul failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3Cross(t *testing.T) {
	v1 := NewVector3(1, 0, 0)
	v2 := NewVector3(0, 1, 0)
	result := v1.Cross(v2)

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}

	// Swapping operands flips the direction
	if reversed := v2.Cross(v1); reversed != expected.Mul(-1) {
		t.Errorf("Cross failed: expected %v, got %v", expected.Mul(-1), reversed)
	}
}

func TestVector3Dot(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Dot(v2)

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestVector3MinMax(t *testing.T) {
	v1 := NewVector3(1, 5, -3)
	v2 := NewVector3(2, -1, 0)

	if got, want := v1.Min(v2), NewVector3(1, -1, -3); got != want {
		t.Errorf("Min failed: expected %v, got %v", want, got)
	}
	if got, want := v1.Max(v2), NewVector3(2, 5, 0); got != want {
		t.Errorf("Max failed: expected %v, got %v", want, got)
	}
}

func TestVector3Array(t *testing.T) {
	got := NewVector3(1, 2, 3).Array()
	if got != [3]float64{1, 2, 3} {
		t.Errorf("Array failed: expected [1 2 3], got %v", got)
	}
}

func TestVector3IsFinite(t *testing.T) {
	if !NewVector3(1, -2, 1e300).IsFinite() {
		t.Errorf("IsFinite failed: expected finite vector")
	}
	for _, v := range []Vector3{
		NewVector3(math.NaN(), 0, 0),
		NewVector3(0, math.Inf(1), 0),
		NewVector3(0, 0, math.Inf(-1)),
	} {
		if v.IsFinite() {
			t.Errorf("IsFinite failed: expected %v to be non-finite", v)
		}
	}
}
