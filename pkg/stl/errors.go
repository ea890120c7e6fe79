package stl

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFacets is returned when ASCII input contains no well-formed facet block
	ErrNoFacets = errors.New("no facets found")
	// ErrMalformedFacet is returned in strict mode for a facet block that breaks the grammar
	ErrMalformedFacet = errors.New("malformed facet")
	// ErrTruncated is returned when binary input is shorter than its declared triangle count
	ErrTruncated = errors.New("truncated binary data")
)

// ParseError describes input that could not be read as STL
type ParseError struct {
	Format Format
	// Offset is the byte position of the problem, or -1 when it concerns the whole input
	Offset int64
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("stl: %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("stl: %s: %v at byte %d", e.Format, e.Err, e.Offset)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}
