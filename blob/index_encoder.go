package blob

import (
	"math"

	"github.com/arloliu/meshcodec/encoding"
	"github.com/arloliu/meshcodec/errs"
	"github.com/arloliu/meshcodec/format"
	"github.com/arloliu/meshcodec/internal/pool"
)

// indexCodeFree marks a code byte carrying three per-vertex kinds
// (0b10aabbcc). Code bytes below it are edge matches (0b0rrsssvv with
// rotation r, edge FIFO slot s, third-vertex kind v).
const indexCodeFree = 0x80

// maxTriangleAux is the worst-case auxiliary bytes per triangle: three
// literal vertices, each a 5-byte varint.
const maxTriangleAux = 3 * encoding.MaxVarint32Len

// EncodeIndexBufferBound returns the worst-case encoded size for an index
// buffer with the given index count.
//
// The bound never under-estimates the true encoded size for any valid input
// matching the counts; callers may use it to pre-size their own buffers. The
// actual encoded size is usually far smaller (one to a few bytes per
// triangle), so callers must not assume the bound is the final size.
//
// vertexCount is accepted for API symmetry with EncodeIndexBuffer; literal
// deltas are bounded by the 32-bit index width regardless of vertex count.
// The bound saturates at math.MaxInt instead of overflowing.
func EncodeIndexBufferBound(indexCount, vertexCount int) int {
	_ = vertexCount

	if indexCount <= 0 {
		return 1
	}

	triCount := indexCount / 3
	perTriangle := 1 + maxTriangleAux
	if triCount > (math.MaxInt-1)/perTriangle {
		return math.MaxInt
	}

	return 1 + triCount*perTriangle
}

// EncodeIndexBuffer encodes a triangle list into a compact byte blob that is
// generally much smaller than the raw indices and compresses better.
//
// For maximum efficiency the index buffer being encoded has to be optimized
// for vertex cache and vertex fetch first; the encoder keeps triangles in
// input order and relies on that locality for its edge and vertex predictors.
//
// Preconditions: len(indices) must be a multiple of 3, every value must be
// below vertexCount, and vertexCount must fit in 32 bits. Violations are
// reported as typed errors before any encoding work.
//
// The returned blob is freshly allocated and sized to the bytes actually
// used. Decoding requires the caller to retain the index count separately
// (e.g. in a container header); it is not recoverable from the blob.
func EncodeIndexBuffer(indices []uint32, vertexCount int) ([]byte, error) {
	if len(indices)%3 != 0 {
		return nil, errs.ErrInvalidIndexCount
	}
	if vertexCount < 0 || uint64(vertexCount) > uint64(math.MaxUint32) {
		return nil, errs.ErrInvalidVertexCount
	}
	for _, idx := range indices {
		if uint64(idx) >= uint64(vertexCount) {
			return nil, errs.ErrIndexOutOfRange
		}
	}

	bound := EncodeIndexBufferBound(len(indices), vertexCount)
	if bound == math.MaxInt {
		return nil, errs.ErrSizeOverflow
	}

	triCount := len(indices) / 3

	// Code bytes occupy a fixed region right after the format byte, so they
	// are written in place while auxiliary bytes accumulate separately.
	out := make([]byte, 1+triCount, bound)
	out[0] = byte(format.TypeIndexBlob)<<4 | format.IndexBlobVersion

	aux := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(aux)

	state := newIndexState()
	for t := 0; t < triCount; t++ {
		a := indices[3*t]
		b := indices[3*t+1]
		c := indices[3*t+2]
		out[1+t] = encodeTriangle(&state, aux, a, b, c)
	}

	return append(out, aux.Bytes()...), nil
}

// encodeTriangle classifies one triangle against the prediction tables and
// returns its code byte, appending any auxiliary bytes to aux.
//
// Tie-breaking is fixed so encoding is deterministic: edge FIFO slots are
// scanned newest-first, rotations 0..2 are checked inside each slot, and the
// first match wins.
func encodeTriangle(s *indexState, aux *pool.ByteBuffer, a, b, c uint32) byte {
	rotations := [3][3]uint32{{a, b, c}, {b, c, a}, {c, a, b}}

	for slot := uint32(0); slot < edgeFifoSize; slot++ {
		e := s.edgeAt(slot)
		for r := range rotations {
			if e.a != rotations[r][0] || e.b != rotations[r][1] {
				continue
			}

			x := rotations[r][0]
			y := rotations[r][1]
			z := rotations[r][2]

			kind := encodeVertex(s, aux, z)

			// Only the two edges not shared with the matched triangle are new.
			s.pushEdge(z, y)
			s.pushEdge(x, z)

			return byte(r)<<5 | byte(slot)<<2 | kind
		}
	}

	ka := encodeVertex(s, aux, a)
	kb := encodeVertex(s, aux, b)
	kc := encodeVertex(s, aux, c)

	s.pushEdge(b, a)
	s.pushEdge(c, b)
	s.pushEdge(a, c)

	return indexCodeFree | ka<<4 | kb<<2 | kc
}

// encodeVertex picks the cheapest representation for a single vertex index,
// appends its auxiliary bytes, folds it into the state, and returns its kind.
// Kinds are tried in fixed priority order: next, last, FIFO, literal.
func encodeVertex(s *indexState, aux *pool.ByteBuffer, v uint32) byte {
	var kind byte

	switch {
	case v == s.next:
		kind = vertexKindNext
	case v == s.last:
		kind = vertexKindLast
	default:
		if slot := s.findVertex(v); slot >= 0 {
			kind = vertexKindFifo
			aux.MustWrite([]byte{byte(slot)})
		} else {
			kind = vertexKindLiteral
			delta := int32(v - s.last) // wrapping difference
			aux.B = encoding.AppendUvarint(aux.B, uint64(encoding.ZigZag32(delta)))
		}
	}

	s.apply(v, kind)

	return kind
}
