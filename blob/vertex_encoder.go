package blob

import (
	"math"

	"github.com/arloliu/meshcodec/encoding"
	"github.com/arloliu/meshcodec/errs"
	"github.com/arloliu/meshcodec/format"
)

const (
	// MaxVertexSize is the largest supported vertex record size in bytes.
	MaxVertexSize = 256

	// maxVertexBlockSize is the number of records entropy-coded per block.
	// Blocks localize the per-channel bit-width choice to a small working
	// set, which bounds the damage of one noisy record to its own block.
	maxVertexBlockSize = 256

	// vertexHeaderSize covers the format byte and the record size byte.
	vertexHeaderSize = 2
)

// Per-channel selectors: the 2-bit ladder of delta widths tried per block.
const (
	selectorZero = 0 // all deltas in the block are zero; no payload
	selector2Bit = 1 // zigzag deltas < 4, packed 4 per byte
	selector4Bit = 2 // zigzag deltas < 16, packed 2 per byte
	selectorRaw  = 3 // literal zigzag delta bytes
)

// selectorFor returns the smallest ladder rung covering the block's largest
// zigzag delta.
func selectorFor(maxDelta byte) byte {
	switch {
	case maxDelta == 0:
		return selectorZero
	case maxDelta < 4:
		return selector2Bit
	case maxDelta < 16:
		return selector4Bit
	default:
		return selectorRaw
	}
}

// selectorRegionSize returns the bytes holding the packed 2-bit selectors for
// one block, four channels per byte.
func selectorRegionSize(vertexSize int) int {
	return (vertexSize + 3) / 4
}

// EncodeVertexBufferBound returns the worst-case encoded size for a vertex
// buffer with the given record count and size.
//
// The bound never under-estimates the true encoded size for any valid input
// matching the counts (the worst case is every channel of every block falling
// back to literal deltas). It saturates at math.MaxInt instead of
// overflowing. Returns 0 for an unsupported vertexSize.
func EncodeVertexBufferBound(vertexCount, vertexSize int) int {
	if vertexSize < 1 || vertexSize > MaxVertexSize {
		return 0
	}
	if vertexCount <= 0 {
		return vertexHeaderSize
	}

	if vertexCount > (math.MaxInt-vertexHeaderSize)/vertexSize {
		return math.MaxInt
	}
	payload := vertexCount * vertexSize

	blocks := (vertexCount + maxVertexBlockSize - 1) / maxVertexBlockSize
	selBytes := selectorRegionSize(vertexSize)
	if blocks > (math.MaxInt-vertexHeaderSize-payload)/selBytes {
		return math.MaxInt
	}

	return vertexHeaderSize + blocks*selBytes + payload
}

// EncodeVertexBuffer encodes a stream of fixed-size byte records into a
// compact blob that is generally smaller than the raw data and compresses
// better.
//
// vertexData is the raw record bytes (any struct layout agreed out-of-band by
// the caller); its length must be a multiple of vertexSize, which must be
// between 1 and MaxVertexSize. The record size is stored in the blob and
// checked at decode time.
//
// This function works for a single vertex stream; for multiple attribute
// streams, call it once per stream. The returned blob is freshly allocated
// and sized to the bytes actually used; the record count must be retained by
// the caller for decoding.
func EncodeVertexBuffer(vertexData []byte, vertexSize int) ([]byte, error) {
	if vertexSize < 1 || vertexSize > MaxVertexSize {
		return nil, errs.ErrInvalidRecordSize
	}
	if len(vertexData)%vertexSize != 0 {
		return nil, errs.ErrInvalidVertexData
	}

	count := len(vertexData) / vertexSize
	bound := EncodeVertexBufferBound(count, vertexSize)
	if bound == math.MaxInt {
		return nil, errs.ErrSizeOverflow
	}

	out := make([]byte, 0, bound)
	out = append(out, byte(format.TypeVertexBlob)<<4|format.VertexBlobVersion, byte(vertexSize-1))

	selBytes := selectorRegionSize(vertexSize)

	// prev carries the delta baseline across blocks; the chain starts from
	// the zero record so the first record encodes its own bytes.
	var prev [MaxVertexSize]byte
	var deltas [maxVertexBlockSize]byte

	for base := 0; base < count; base += maxVertexBlockSize {
		n := min(maxVertexBlockSize, count-base)

		selOff := len(out)
		for i := 0; i < selBytes; i++ {
			out = append(out, 0)
		}

		for k := 0; k < vertexSize; k++ {
			p := prev[k]
			var maxDelta byte
			for i := 0; i < n; i++ {
				cur := vertexData[(base+i)*vertexSize+k]
				z := encoding.ZigZag8(cur - p)
				p = cur
				deltas[i] = z
				if z > maxDelta {
					maxDelta = z
				}
			}

			sel := selectorFor(maxDelta)
			out[selOff+(k>>2)] |= sel << ((k & 3) * 2)

			switch sel {
			case selector2Bit:
				out = encoding.AppendPacked2(out, deltas[:n])
			case selector4Bit:
				out = encoding.AppendPacked4(out, deltas[:n])
			case selectorRaw:
				out = append(out, deltas[:n]...)
			}
		}

		copy(prev[:vertexSize], vertexData[(base+n-1)*vertexSize:(base+n)*vertexSize])
	}

	return out, nil
}
