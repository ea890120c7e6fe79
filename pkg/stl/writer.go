package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

// WriteBinary encodes triangles as a binary STL. The header is truncated or
// NUL-padded to 80 bytes. Coordinates are narrowed to float32.
func WriteBinary(w io.Writer, header string, triangles []geometry.Triangle) error {
	if uint64(len(triangles)) > math.MaxUint32 {
		return fmt.Errorf("too many triangles for binary STL: %d", len(triangles))
	}

	buf := make([]byte, dataOffset)
	copy(buf[:headerSize], header)
	binary.LittleEndian.PutUint32(buf[headerSize:], uint32(len(triangles)))
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	rec := make([]byte, recordSize)
	for i, t := range triangles {
		putVector(rec[0:], t.Normal)
		putVector(rec[12:], t.V1)
		putVector(rec[24:], t.V2)
		putVector(rec[36:], t.V3)
		binary.LittleEndian.PutUint16(rec[48:], 0)

		if _, err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}
	return nil
}

// WriteASCII encodes triangles as an ASCII STL solid
func WriteASCII(w io.Writer, name string, triangles []geometry.Triangle) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range triangles {
		fmt.Fprintf(bw, "  facet normal %s\n", formatVector(t.Normal))
		fmt.Fprintln(bw, "    outer loop")
		for _, v := range t.Vertices() {
			fmt.Fprintf(bw, "      vertex %s\n", formatVector(v))
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	return bw.Flush()
}

func putVector(b []byte, v geometry.Vector3) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}

func formatVector(v geometry.Vector3) string {
	return strconv.FormatFloat(v.X, 'g', -1, 64) + " " +
		strconv.FormatFloat(v.Y, 'g', -1, 64) + " " +
		strconv.FormatFloat(v.Z, 'g', -1, 64)
}
