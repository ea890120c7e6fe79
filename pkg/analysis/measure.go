package analysis

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/philipparndt/stlmeasure/pkg/stl"
)

// ErrInvalidDensity is returned for a negative, NaN or infinite density
var ErrInvalidDensity = errors.New("density must be a finite non-negative number")

type options struct {
	density float64
	strict  bool
	logger  *zap.Logger
}

// Option configures Measure and MeasureReader
type Option func(*options)

// WithDensity sets the material density in g/cm³
func WithDensity(density float64) Option {
	return func(o *options) {
		o.density = density
	}
}

// WithStrict rejects malformed ASCII facets instead of skipping them
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithLogger sets the logger for parse diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		density: DefaultDensity,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Measure detects the STL encoding of data, reads every triangle and returns
// the resulting measurements.
func Measure(data []byte, opts ...Option) (*Result, error) {
	o := newOptions(opts)

	var readerOpts []stl.Option
	if o.strict {
		readerOpts = append(readerOpts, stl.WithStrict())
	}

	r, err := stl.NewReader(data, readerOpts...)
	if err != nil {
		return nil, err
	}
	return measure(r, o)
}

// MeasureReader consumes r completely and returns the resulting measurements
func MeasureReader(r stl.TriangleReader, opts ...Option) (*Result, error) {
	return measure(r, newOptions(opts))
}

func measure(r stl.TriangleReader, o options) (*Result, error) {
	if o.density < 0 || !finite(o.density) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDensity, o.density)
	}

	acc := NewAccumulator(o.density)
	for r.Next() {
		acc.Add(r.Triangle())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	if skipped := r.Skipped(); skipped > 0 {
		o.logger.Warn("Skipped malformed facets",
			zap.Int("skipped", skipped),
			zap.Int("triangles", acc.Triangles()),
		)
	}

	result, err := acc.Finalize()
	if err != nil {
		return nil, err
	}

	result.Name = r.Name()
	result.Format = r.Format()
	result.SkippedFacets = r.Skipped()

	o.logger.Debug("Measured mesh",
		zap.Stringer("format", result.Format),
		zap.Int("triangles", result.Triangles),
		zap.Float64("volume", result.Volume),
		zap.Bool("watertight", result.IsWatertight),
	)
	return result, nil
}
