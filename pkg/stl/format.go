package stl

import (
	"encoding/binary"
	"fmt"
)

const (
	headerSize = 80
	// dataOffset is where the first binary triangle record starts
	dataOffset = headerSize + 4
	// recordSize covers a normal, three vertices (12 float32) and the attribute field
	recordSize = 12*4 + 2

	maxASCIIByte = 127
)

// Format identifies the STL encoding
type Format int

const (
	ASCII Format = iota
	Binary
)

// String returns the lower-case format name
func (f Format) String() string {
	switch f {
	case ASCII:
		return "ascii"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// MarshalText encodes the format by name for JSON and YAML output
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// DetectFormat decides whether data holds a binary or an ASCII STL.
//
// Inputs of 84 bytes or less are ASCII. Any byte above 127 means binary.
// Otherwise the input is binary only if its length matches the triangle count
// stored at offset 80 exactly, which catches binary files whose header starts
// with "solid".
func DetectFormat(data []byte) Format {
	if len(data) <= dataOffset {
		return ASCII
	}

	for _, b := range data {
		if b > maxASCIIByte {
			return Binary
		}
	}

	if int64(len(data)) == binarySize(declaredCount(data)) {
		return Binary
	}
	return ASCII
}

// IsBinary reports whether DetectFormat classifies data as binary
func IsBinary(data []byte) bool {
	return DetectFormat(data) == Binary
}

func declaredCount(data []byte) uint32 {
	return binary.LittleEndian.Uint32(data[headerSize:dataOffset])
}

func binarySize(count uint32) int64 {
	return dataOffset + int64(count)*recordSize
}
