package analysis_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipparndt/stlmeasure/internal/fixtures"
	"github.com/philipparndt/stlmeasure/pkg/analysis"
	"github.com/philipparndt/stlmeasure/pkg/geometry"
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

func offsetCube() []geometry.Triangle {
	return fixtures.Box(geometry.Vector3{}, geometry.NewVector3(3, 3, 3))
}

func TestMeasureASCIIAndBinaryAgree(t *testing.T) {
	mesh := append(offsetCube(), fixtures.Box(geometry.NewVector3(10, -5, 2.5), geometry.NewVector3(0.5, 8, 1.25))...)

	ascii, err := analysis.Measure(fixtures.ASCIISTL("pair", mesh))
	require.NoError(t, err)
	binary, err := analysis.Measure(fixtures.BinarySTL("pair", mesh))
	require.NoError(t, err)

	assert.Equal(t, stl.ASCII, ascii.Format)
	assert.Equal(t, stl.Binary, binary.Format)
	assert.Equal(t, "pair", ascii.Name)
	assert.Equal(t, "pair", binary.Name)

	assert.InDelta(t, ascii.Volume, binary.Volume, 1e-12)
	assert.InDelta(t, ascii.Area, binary.Area, 1e-9)
	assert.InDeltaSlice(t, ascii.CenterOfMass[:], binary.CenterOfMass[:], 1e-9)
	assert.Equal(t, ascii.BoundingBox, binary.BoundingBox)
	assert.Equal(t, ascii.IsWatertight, binary.IsWatertight)
	assert.True(t, binary.IsWatertight)
}

func TestMeasureIsIdempotent(t *testing.T) {
	data := fixtures.BinarySTL("", offsetCube())

	first, err := analysis.Measure(data)
	require.NoError(t, err)
	second, err := analysis.Measure(data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMeasureDensity(t *testing.T) {
	data := fixtures.ASCIISTL("cube", offsetCube())

	def, err := analysis.Measure(data)
	require.NoError(t, err)
	assert.InDelta(t, 0.027*analysis.DefaultDensity, def.Weight, 1e-12)

	custom, err := analysis.Measure(data, analysis.WithDensity(1.25))
	require.NoError(t, err)
	assert.InDelta(t, 0.027*1.25, custom.Weight, 1e-12)
	assert.Equal(t, def.Volume, custom.Volume)

	for _, density := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = analysis.Measure(data, analysis.WithDensity(density))
		assert.ErrorIs(t, err, analysis.ErrInvalidDensity, "density %v", density)
	}
}

func TestMeasureRejectsNonFiniteCoordinates(t *testing.T) {
	box := offsetCube()
	box[0].V1.X = math.NaN()

	result, err := analysis.Measure(fixtures.BinarySTL("nan", box))
	assert.ErrorIs(t, err, analysis.ErrNonFiniteMesh)
	assert.Nil(t, result)

	// Out of float64 range parses as +Inf
	overflow := []byte("solid big\n" +
		"facet normal 0 0 0\nouter loop\n" +
		"vertex 1e400 0 0\nvertex 0 1 0\nvertex 0 0 1\n" +
		"endloop\nendfacet\nendsolid big\n")

	result, err = analysis.Measure(overflow)
	assert.ErrorIs(t, err, analysis.ErrNonFiniteMesh)
	assert.Nil(t, result)
}

func TestMeasureParseErrors(t *testing.T) {
	_, err := analysis.Measure([]byte("solid nothing\nendsolid nothing\n"))
	assert.ErrorIs(t, err, stl.ErrNoFacets)

	data := fixtures.BinarySTL("", offsetCube())
	_, err = analysis.Measure(data[:len(data)-1])
	assert.Error(t, err)
}

func TestMeasureStrict(t *testing.T) {
	data := append(fixtures.ASCIISTL("cube", offsetCube()), []byte("facet normal 0 0 1 outer loop endloop endfacet\n")...)

	lenient, err := analysis.Measure(data)
	require.NoError(t, err)
	assert.Equal(t, 1, lenient.SkippedFacets)
	assert.True(t, lenient.IsWatertight)

	_, err = analysis.Measure(data, analysis.WithStrict(true))
	assert.ErrorIs(t, err, stl.ErrMalformedFacet)
}

func TestMeasureLogsSkippedFacets(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	data := append(fixtures.ASCIISTL("cube", offsetCube()), []byte("facet normal x\n")...)

	_, err := analysis.Measure(data, analysis.WithLogger(zap.New(core)))
	require.NoError(t, err)

	entries := logs.FilterMessage("Skipped malformed facets").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["skipped"])
}

func TestMeasureReader(t *testing.T) {
	r, err := stl.NewReader(fixtures.BinarySTL("", offsetCube()))
	require.NoError(t, err)

	result, err := analysis.MeasureReader(r, analysis.WithDensity(2))
	require.NoError(t, err)
	assert.InDelta(t, 0.054, result.Weight, 1e-12)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "1.500000 cm³", analysis.FormatMeasurement(1.5, "cm³"))
	assert.Equal(t, "2.000000 units", analysis.FormatMeasurement(2, ""))
	assert.Equal(t, "(1.000000, 2.000000, 3.000000)", analysis.FormatTriple([3]float64{1, 2, 3}))
}
