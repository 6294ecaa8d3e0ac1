package blob

import (
	"github.com/arloliu/meshcodec/encoding"
	"github.com/arloliu/meshcodec/errs"
	"github.com/arloliu/meshcodec/format"
)

// Index constrains the output element type of DecodeIndexBuffer to the two
// widths the binary layout supports: 16-bit and 32-bit unsigned indices.
type Index interface {
	~uint16 | ~uint32
}

// DecodeIndexBuffer decodes a blob produced by EncodeIndexBuffer into
// indexCount indices of type T.
//
// The decoder is safe for untrusted input. It validates only the leading
// format byte and the presence of the fixed per-triangle code region; any
// other corruption yields structurally valid but semantically meaningless
// indices (e.g. degenerate triangles, values at or above the caller's vertex
// count, or values truncated to 16 bits). The call always terminates, never
// reads out of bounds, and returns either a typed error or a fully populated
// slice — never a partial one. Callers that need integrity must validate
// decoded indices against their own vertex count or checksum blobs
// externally.
func DecodeIndexBuffer[T Index](encoded []byte, indexCount int) ([]T, error) {
	if indexCount < 0 || indexCount%3 != 0 {
		return nil, errs.ErrInvalidIndexCount
	}
	if len(encoded) == 0 {
		return nil, errs.ErrInvalidBlobHeader
	}

	head := encoded[0]
	if head>>4 != byte(format.TypeIndexBlob) {
		return nil, errs.ErrInvalidBlobHeader
	}
	if head&0x0F != format.IndexBlobVersion {
		return nil, errs.ErrUnsupportedBlobVersion
	}

	triCount := indexCount / 3
	if len(encoded) < 1+triCount {
		return nil, errs.ErrTruncatedBlob
	}

	result := make([]T, indexCount)
	codes := encoded[1 : 1+triCount]
	aux := encoding.NewReader(encoded[1+triCount:])

	state := newIndexState()
	for t, code := range codes {
		a, b, c := decodeTriangle(&state, &aux, code)
		result[3*t] = T(a)
		result[3*t+1] = T(b)
		result[3*t+2] = T(c)
	}

	return result, nil
}

// decodeTriangle replays one code byte against the prediction state and
// returns the triangle in its original input order.
func decodeTriangle(s *indexState, aux *encoding.Reader, code byte) (uint32, uint32, uint32) {
	if code < indexCodeFree {
		rotation := (code >> 5) & 3
		slot := uint32(code>>2) & (edgeFifoSize - 1)
		kind := code & 3

		e := s.edgeAt(slot)
		x := e.a
		y := e.b
		z := decodeVertex(s, aux, kind)

		s.pushEdge(z, y)
		s.pushEdge(x, z)

		// (x,y,z) is the rotation of the original triangle that aligned with
		// the FIFO edge; un-rotate to reproduce the input order exactly.
		switch rotation {
		case 1:
			return z, x, y
		case 2:
			return y, z, x
		default: // rotation 3 only appears in corrupted input
			return x, y, z
		}
	}

	// Free triangle: three per-vertex kinds, applied sequentially. The top
	// bits are masked, so reserved code bytes from corrupted input fall
	// through here deterministically.
	a := decodeVertex(s, aux, (code>>4)&3)
	b := decodeVertex(s, aux, (code>>2)&3)
	c := decodeVertex(s, aux, code&3)

	s.pushEdge(b, a)
	s.pushEdge(c, b)
	s.pushEdge(a, c)

	return a, b, c
}

// decodeVertex reconstructs one vertex index from its kind, consuming
// auxiliary bytes as needed. Failed cursor reads substitute zero values so a
// truncated aux stream degrades into garbage instead of an error.
func decodeVertex(s *indexState, aux *encoding.Reader, kind byte) uint32 {
	var v uint32

	switch kind {
	case vertexKindNext:
		v = s.next
	case vertexKindLast:
		v = s.last
	case vertexKindFifo:
		slot, _ := aux.ReadUint8()
		v = s.vertexAt(uint32(slot) & (vertexFifoSize - 1))
	default: // vertexKindLiteral
		raw, _ := aux.ReadUvarint()
		delta := encoding.UnZigZag32(uint32(raw))
		v = s.last + uint32(delta)
	}

	s.apply(v, kind)

	return v
}
