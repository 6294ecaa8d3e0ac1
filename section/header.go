package section

import (
	"math"

	"github.com/arloliu/meshcodec/endian"
	"github.com/arloliu/meshcodec/errs"
	"github.com/arloliu/meshcodec/format"
)

// EncodeHeader is the fixed-size record at the start of a packed mesh
// container. It carries the counts needed to decode the two blobs and the
// quantization parameters needed to dequantize positions and UVs afterwards;
// none of these are recoverable from the blobs themselves.
type EncodeHeader struct {
	// Magic is the 4-byte signature; must equal format.MagicTag.
	Magic [4]byte // byte offset 0-3
	// GroupCount is the number of EncodeObject records following the header.
	GroupCount uint32 // byte offset 4-7
	// VertexCount is the number of records in the vertex blob.
	VertexCount uint32 // byte offset 8-11
	// IndexCount is the number of indices in the index blob.
	IndexCount uint32 // byte offset 12-15
	// VertexDataSize is the stored byte size of the vertex blob.
	VertexDataSize uint32 // byte offset 16-19
	// IndexDataSize is the stored byte size of the index blob.
	IndexDataSize uint32 // byte offset 20-23

	// PosOffset and PosScale map quantized positions back to model space
	// with a single uniform multiply per axis.
	PosOffset [3]float32 // byte offset 24-35
	PosScale  float32    // byte offset 36-39
	// UVOffset and UVScale are per-axis; UV axes do not preserve aspect.
	UVOffset [2]float32 // byte offset 40-47
	UVScale  [2]float32 // byte offset 48-55

	// Reserved is padding for forward extension. The container layer uses
	// the low byte of Reserved[0] for the blob compression tag and the low
	// bit of Reserved[1] for the checksum-trailer flag.
	Reserved [2]uint32 // byte offset 56-63
}

// NewEncodeHeader creates a header with the magic tag set. Counts, sizes, and
// quantization parameters are filled in by the container writer's Finish.
func NewEncodeHeader() *EncodeHeader {
	return &EncodeHeader{Magic: format.MagicTag}
}

// Bytes serializes the EncodeHeader into a fresh HeaderSize byte slice.
func (h *EncodeHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := endian.GetLittleEndianEngine()

	copy(b[0:4], h.Magic[:])
	engine.PutUint32(b[4:8], h.GroupCount)
	engine.PutUint32(b[8:12], h.VertexCount)
	engine.PutUint32(b[12:16], h.IndexCount)
	engine.PutUint32(b[16:20], h.VertexDataSize)
	engine.PutUint32(b[20:24], h.IndexDataSize)

	engine.PutUint32(b[24:28], math.Float32bits(h.PosOffset[0]))
	engine.PutUint32(b[28:32], math.Float32bits(h.PosOffset[1]))
	engine.PutUint32(b[32:36], math.Float32bits(h.PosOffset[2]))
	engine.PutUint32(b[36:40], math.Float32bits(h.PosScale))
	engine.PutUint32(b[40:44], math.Float32bits(h.UVOffset[0]))
	engine.PutUint32(b[44:48], math.Float32bits(h.UVOffset[1]))
	engine.PutUint32(b[48:52], math.Float32bits(h.UVScale[0]))
	engine.PutUint32(b[52:56], math.Float32bits(h.UVScale[1]))

	engine.PutUint32(b[56:60], h.Reserved[0])
	engine.PutUint32(b[60:64], h.Reserved[1])

	return b
}

// Parse parses the header from a byte slice.
//
// The magic tag is validated before any other field is read; nothing in a
// buffer with a wrong magic is trusted.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly HeaderSize bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize or ErrInvalidMagicNumber
func (h *EncodeHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}
	if [4]byte(data[0:4]) != format.MagicTag {
		return errs.ErrInvalidMagicNumber
	}

	engine := endian.GetLittleEndianEngine()

	copy(h.Magic[:], data[0:4])
	h.GroupCount = engine.Uint32(data[4:8])
	h.VertexCount = engine.Uint32(data[8:12])
	h.IndexCount = engine.Uint32(data[12:16])
	h.VertexDataSize = engine.Uint32(data[16:20])
	h.IndexDataSize = engine.Uint32(data[20:24])

	h.PosOffset[0] = math.Float32frombits(engine.Uint32(data[24:28]))
	h.PosOffset[1] = math.Float32frombits(engine.Uint32(data[28:32]))
	h.PosOffset[2] = math.Float32frombits(engine.Uint32(data[32:36]))
	h.PosScale = math.Float32frombits(engine.Uint32(data[36:40]))
	h.UVOffset[0] = math.Float32frombits(engine.Uint32(data[40:44]))
	h.UVOffset[1] = math.Float32frombits(engine.Uint32(data[44:48]))
	h.UVScale[0] = math.Float32frombits(engine.Uint32(data[48:52]))
	h.UVScale[1] = math.Float32frombits(engine.Uint32(data[52:56]))

	h.Reserved[0] = engine.Uint32(data[56:60])
	h.Reserved[1] = engine.Uint32(data[60:64])

	return nil
}

// ParseEncodeHeader parses an EncodeHeader from the start of a byte slice.
func ParseEncodeHeader(data []byte) (EncodeHeader, error) {
	if len(data) < HeaderSize {
		return EncodeHeader{}, errs.ErrInvalidHeaderSize
	}

	h := EncodeHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return EncodeHeader{}, err
	}

	return h, nil
}

// EncodeObject describes one draw group within a packed mesh: a range of the
// shared index buffer plus the byte length of an out-of-band material name.
type EncodeObject struct {
	IndexOffset    uint32 // byte offset 0-3
	IndexCount     uint32 // byte offset 4-7
	MaterialLength uint32 // byte offset 8-11
	Reserved       uint32 // byte offset 12-15
}

// Bytes serializes the EncodeObject into a fresh ObjectSize byte slice.
func (o *EncodeObject) Bytes() []byte {
	b := make([]byte, ObjectSize)
	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[0:4], o.IndexOffset)
	engine.PutUint32(b[4:8], o.IndexCount)
	engine.PutUint32(b[8:12], o.MaterialLength)
	engine.PutUint32(b[12:16], o.Reserved)

	return b
}

// Parse parses the object record from a byte slice of exactly ObjectSize bytes.
func (o *EncodeObject) Parse(data []byte) error {
	if len(data) != ObjectSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()
	o.IndexOffset = engine.Uint32(data[0:4])
	o.IndexCount = engine.Uint32(data[4:8])
	o.MaterialLength = engine.Uint32(data[8:12])
	o.Reserved = engine.Uint32(data[12:16])

	return nil
}
