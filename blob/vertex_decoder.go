package blob

import (
	"math"

	"github.com/arloliu/meshcodec/encoding"
	"github.com/arloliu/meshcodec/errs"
	"github.com/arloliu/meshcodec/format"
)

// DecodeVertexBuffer decodes a blob produced by EncodeVertexBuffer into
// vertexCount records of vertexSize bytes each, returned as one flat slice.
//
// vertexSize must match the record size used at encode time; the blob stores
// it and a mismatch is reported as ErrRecordSizeMismatch before any decoding
// work.
//
// The decoder is safe for untrusted input: beyond the two leading header
// bytes it performs no validation, a truncated or corrupted payload decodes
// into garbage records, and the call always terminates returning either a
// typed error or a fully populated result of exactly vertexCount*vertexSize
// bytes.
func DecodeVertexBuffer(encoded []byte, vertexCount, vertexSize int) ([]byte, error) {
	if vertexSize < 1 || vertexSize > MaxVertexSize {
		return nil, errs.ErrInvalidRecordSize
	}
	if vertexCount < 0 {
		return nil, errs.ErrInvalidVertexCount
	}
	if len(encoded) < vertexHeaderSize {
		return nil, errs.ErrInvalidBlobHeader
	}

	head := encoded[0]
	if head>>4 != byte(format.TypeVertexBlob) {
		return nil, errs.ErrInvalidBlobHeader
	}
	if head&0x0F != format.VertexBlobVersion {
		return nil, errs.ErrUnsupportedBlobVersion
	}
	if int(encoded[1])+1 != vertexSize {
		return nil, errs.ErrRecordSizeMismatch
	}
	if vertexCount > 0 && vertexSize > math.MaxInt/vertexCount {
		return nil, errs.ErrSizeOverflow
	}

	result := make([]byte, vertexCount*vertexSize)
	cursor := encoding.NewReader(encoded[vertexHeaderSize:])
	selBytes := selectorRegionSize(vertexSize)

	var prev [MaxVertexSize]byte
	var deltas [maxVertexBlockSize]byte

	for base := 0; base < vertexCount; base += maxVertexBlockSize {
		n := min(maxVertexBlockSize, vertexCount-base)

		// A missing selector region reads as all-zero selectors, which turns
		// the rest of the stream into repeats of the previous record.
		selectors, ok := cursor.ReadBytes(selBytes)

		for k := 0; k < vertexSize; k++ {
			var sel byte
			if ok {
				sel = (selectors[k>>2] >> ((k & 3) * 2)) & 3
			}

			clear(deltas[:n])
			switch sel {
			case selector2Bit:
				if payload, pok := cursor.ReadBytes(encoding.Packed2Size(n)); pok {
					encoding.UnpackPacked2(payload, deltas[:n])
				}
			case selector4Bit:
				if payload, pok := cursor.ReadBytes(encoding.Packed4Size(n)); pok {
					encoding.UnpackPacked4(payload, deltas[:n])
				}
			case selectorRaw:
				if payload, pok := cursor.ReadBytes(n); pok {
					copy(deltas[:n], payload)
				}
			}

			p := prev[k]
			for i := 0; i < n; i++ {
				p += encoding.UnZigZag8(deltas[i])
				result[(base+i)*vertexSize+k] = p
			}
			prev[k] = p
		}
	}

	return result, nil
}
