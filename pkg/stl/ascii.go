package stl

import (
	"bytes"
	"errors"
	"regexp"
	"strconv"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

var (
	kwSolid    = []byte("solid")
	kwFacet    = []byte("facet")
	kwNormal   = []byte("normal")
	kwOuter    = []byte("outer")
	kwLoop     = []byte("loop")
	kwVertex   = []byte("vertex")
	kwEndloop  = []byte("endloop")
	kwEndfacet = []byte("endfacet")

	// Integer, decimal or exponential notation with an optional sign. A
	// leading dot (".5", "-.5") is accepted; "1.", "inf" and "nan" are not.
	numberPattern = regexp.MustCompile(`^[-+]?(?:[0-9]*\.)?[0-9]+(?:[eE][-+]?[0-9]+)?$`)
)

// asciiReader walks whitespace-separated tokens and emits one triangle per
// well-formed facet block. Tokens outside facet blocks (solid, endsolid,
// names) are ignored.
type asciiReader struct {
	data   []byte
	pos    int
	strict bool
	name   string

	current geometry.Triangle
	emitted int
	skipped int
	done    bool
	err     error
}

func newASCIIReader(data []byte, strict bool) *asciiReader {
	return &asciiReader{
		data:   data,
		strict: strict,
		name:   solidName(data),
	}
}

// Next scans forward to the next well-formed facet block
func (r *asciiReader) Next() bool {
	if r.done {
		return false
	}

	for {
		_, tok := r.token()
		if tok == nil {
			r.finish()
			return false
		}
		if !bytes.Equal(tok, kwFacet) {
			continue
		}

		p := facetParser{r: r}
		t := p.parse()
		if !p.failed {
			r.current = t
			r.emitted++
			return true
		}

		r.skipped++
		if r.strict {
			r.err = &ParseError{Format: ASCII, Offset: int64(p.failAt), Err: ErrMalformedFacet}
			r.done = true
			return false
		}
		// Resume at the offending token, it may open the next block
		r.pos = p.failAt
	}
}

func (r *asciiReader) finish() {
	r.done = true
	if r.err == nil && r.emitted == 0 {
		r.err = &ParseError{Format: ASCII, Offset: -1, Err: ErrNoFacets}
	}
}

func (r *asciiReader) Triangle() geometry.Triangle { return r.current }
func (r *asciiReader) Err() error                  { return r.err }
func (r *asciiReader) Format() Format              { return ASCII }
func (r *asciiReader) Name() string                { return r.name }
func (r *asciiReader) Skipped() int                { return r.skipped }

// token returns the next whitespace-delimited token and its offset, or nil at
// the end of the input.
func (r *asciiReader) token() (int, []byte) {
	for r.pos < len(r.data) && isSpace(r.data[r.pos]) {
		r.pos++
	}
	if r.pos >= len(r.data) {
		return r.pos, nil
	}

	start := r.pos
	for r.pos < len(r.data) && !isSpace(r.data[r.pos]) {
		r.pos++
	}
	return start, r.data[start:r.pos]
}

// facetParser consumes the tokens following "facet". After the first
// mismatch every step is a no-op and failAt holds the offending offset.
type facetParser struct {
	r      *asciiReader
	failed bool
	failAt int
}

func (p *facetParser) parse() geometry.Triangle {
	p.keyword(kwNormal)
	normal := p.vector()
	p.keyword(kwOuter)
	p.keyword(kwLoop)

	var v [3]geometry.Vector3
	for i := range v {
		p.keyword(kwVertex)
		v[i] = p.vector()
	}

	p.keyword(kwEndloop)
	p.keyword(kwEndfacet)
	return geometry.NewTriangle(normal, v[0], v[1], v[2])
}

func (p *facetParser) keyword(want []byte) {
	if p.failed {
		return
	}
	start, tok := p.r.token()
	if !bytes.Equal(tok, want) {
		p.fail(start)
	}
}

func (p *facetParser) vector() geometry.Vector3 {
	return geometry.NewVector3(p.number(), p.number(), p.number())
}

func (p *facetParser) number() float64 {
	if p.failed {
		return 0
	}
	start, tok := p.r.token()
	if tok == nil || !numberPattern.Match(tok) {
		p.fail(start)
		return 0
	}

	v, err := strconv.ParseFloat(string(tok), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		p.fail(start)
		return 0
	}
	return v
}

func (p *facetParser) fail(at int) {
	p.failed = true
	p.failAt = at
}

// solidName returns the rest of the first line when the input opens with "solid"
func solidName(data []byte) string {
	trimmed := bytes.TrimLeft(data, " \t\r\n\f\v")
	if !bytes.HasPrefix(trimmed, kwSolid) {
		return ""
	}

	rest := trimmed[len(kwSolid):]
	if len(rest) > 0 && !isSpace(rest[0]) {
		return ""
	}
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return string(bytes.TrimSpace(rest))
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
