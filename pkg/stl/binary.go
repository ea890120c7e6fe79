package stl

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

// binaryReader decodes fixed 50-byte triangle records
type binaryReader struct {
	data    []byte
	name    string
	count   uint32
	index   uint32
	current geometry.Triangle
}

func newBinaryReader(data []byte) (*binaryReader, error) {
	if len(data) < dataOffset {
		return nil, &ParseError{Format: Binary, Offset: int64(len(data)), Err: ErrTruncated}
	}

	count := declaredCount(data)
	if need := binarySize(count); int64(len(data)) < need {
		return nil, &ParseError{Format: Binary, Offset: int64(len(data)), Err: ErrTruncated}
	}

	return &binaryReader{
		data:  data,
		name:  strings.TrimRight(string(data[:headerSize]), "\x00 "),
		count: count,
	}, nil
}

// Next decodes the next record
func (r *binaryReader) Next() bool {
	if r.index >= r.count {
		return false
	}

	start := dataOffset + int(r.index)*recordSize
	rec := r.data[start : start+recordSize]
	r.current = geometry.NewTriangle(
		readVector(rec[0:]),
		readVector(rec[12:]),
		readVector(rec[24:]),
		readVector(rec[36:]),
	)
	// The trailing 2-byte attribute field is ignored
	r.index++
	return true
}

func (r *binaryReader) Triangle() geometry.Triangle { return r.current }
func (r *binaryReader) Err() error                  { return nil }
func (r *binaryReader) Format() Format              { return Binary }
func (r *binaryReader) Name() string                { return r.name }
func (r *binaryReader) Skipped() int                { return 0 }

// Count returns the declared number of triangles
func (r *binaryReader) Count() int { return int(r.count) }

func readVector(b []byte) geometry.Vector3 {
	return geometry.NewVector3(
		readFloat(b[0:4]),
		readFloat(b[4:8]),
		readFloat(b[8:12]),
	)
}

func readFloat(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
