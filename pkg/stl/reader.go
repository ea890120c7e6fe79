package stl

import (
	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

// TriangleReader yields the triangles of an STL input one at a time, in file
// order. Usage follows bufio.Scanner:
//
//	for r.Next() {
//		t := r.Triangle()
//	}
//	if err := r.Err(); err != nil { ... }
type TriangleReader interface {
	// Next advances to the next triangle. It returns false at the end of the
	// input or on error.
	Next() bool
	// Triangle returns the triangle read by the last successful Next.
	Triangle() geometry.Triangle
	// Err returns the first error encountered, once Next has returned false.
	Err() error
	// Format reports which encoding is being read.
	Format() Format
	// Name returns the solid name or the trimmed binary header.
	Name() string
	// Skipped returns how many malformed ASCII facet blocks were dropped so far.
	Skipped() int
}

// Counter is implemented by readers that know the declared triangle count
// before reading, which is the case for binary input.
type Counter interface {
	Count() int
}

type readerOptions struct {
	strict bool
}

// Option configures NewReader
type Option func(*readerOptions)

// WithStrict makes the ASCII reader fail on the first malformed facet block
// instead of skipping it.
func WithStrict() Option {
	return func(o *readerOptions) {
		o.strict = true
	}
}

// NewReader detects the encoding of data and returns a reader for it. A
// binary input shorter than its declared triangle count fails here.
func NewReader(data []byte, opts ...Option) (TriangleReader, error) {
	var o readerOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch DetectFormat(data) {
	case Binary:
		return newBinaryReader(data)
	default:
		return newASCIIReader(data, o.strict), nil
	}
}
