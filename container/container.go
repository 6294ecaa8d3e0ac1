// Package container packages encoded mesh blobs into a self-describing byte
// stream: an EncodeHeader, the per-group EncodeObject records, the vertex
// blob, the index blob, and an optional xxHash64 trailer.
//
// The container is the caller-level layer around the core codecs. It persists
// everything a decoder cannot recover from the blobs themselves: counts,
// stored blob sizes, and the quantization offset/scale parameters. Blobs may
// be stored raw or wrapped in one of the compress package codecs; the
// compression tag and checksum flag live in the header's reserved words.
package container

import (
	"fmt"

	"github.com/arloliu/meshcodec/compress"
	"github.com/arloliu/meshcodec/endian"
	"github.com/arloliu/meshcodec/errs"
	"github.com/arloliu/meshcodec/format"
	"github.com/arloliu/meshcodec/internal/options"
	"github.com/arloliu/meshcodec/internal/pool"
	"github.com/arloliu/meshcodec/section"
)

// Writer assembles a mesh container. Configure it with functional options,
// set the blobs and quantization parameters, then call Finish.
//
// A Writer is single-use and not safe for concurrent use.
type Writer struct {
	header      section.EncodeHeader
	objects     []section.EncodeObject
	vertexBlob  []byte
	indexBlob   []byte
	compression format.CompressionType
	checksum    bool
}

// WithCompression selects the codec applied to both blobs when the container
// is finished. The default is no compression.
func WithCompression(compressionType format.CompressionType) options.Option[*Writer] {
	return options.New(func(w *Writer) error {
		if _, err := compress.GetCodec(compressionType); err != nil {
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
		}
		w.compression = compressionType

		return nil
	})
}

// WithChecksum toggles the xxHash64 trailer covering the entire container
// body. Enabled by default; disable only when an outer transport already
// guarantees integrity.
func WithChecksum(enabled bool) options.Option[*Writer] {
	return options.NoError(func(w *Writer) {
		w.checksum = enabled
	})
}

// NewWriter creates a container writer with the given options.
func NewWriter(opts ...options.Option[*Writer]) (*Writer, error) {
	w := &Writer{
		header:      *section.NewEncodeHeader(),
		compression: format.CompressionNone,
		checksum:    true,
	}

	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	return w, nil
}

// SetQuantization records the offset/scale parameters derived by the quant
// package. They are persisted in the header; without them the decoded vertex
// records cannot be mapped back to model space.
func (w *Writer) SetQuantization(posOffset [3]float32, posScale float32, uvOffset, uvScale [2]float32) {
	w.header.PosOffset = posOffset
	w.header.PosScale = posScale
	w.header.UVOffset = uvOffset
	w.header.UVScale = uvScale
}

// SetVertexBlob sets the encoded vertex blob and its record count.
// The blob is borrowed until Finish returns.
func (w *Writer) SetVertexBlob(blob []byte, vertexCount int) {
	w.vertexBlob = blob
	w.header.VertexCount = uint32(vertexCount) //nolint:gosec
}

// SetIndexBlob sets the encoded index blob and its index count.
// The blob is borrowed until Finish returns.
func (w *Writer) SetIndexBlob(blob []byte, indexCount int) {
	w.indexBlob = blob
	w.header.IndexCount = uint32(indexCount) //nolint:gosec
}

// AddGroup appends a draw-group record referencing a range of the index
// buffer.
func (w *Writer) AddGroup(indexOffset, indexCount, materialLength uint32) {
	w.objects = append(w.objects, section.EncodeObject{
		IndexOffset:    indexOffset,
		IndexCount:     indexCount,
		MaterialLength: materialLength,
	})
}

// Finish compresses the blobs, fills in the header, and returns the complete
// container as a fresh byte slice.
func (w *Writer) Finish() ([]byte, error) {
	codec, err := compress.CreateCodec(w.compression, "container")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, w.compression)
	}

	storedVertex, err := codec.Compress(w.vertexBlob)
	if err != nil {
		return nil, fmt.Errorf("compress vertex blob: %w", err)
	}
	storedIndex, err := codec.Compress(w.indexBlob)
	if err != nil {
		return nil, fmt.Errorf("compress index blob: %w", err)
	}

	w.header.GroupCount = uint32(len(w.objects)) //nolint:gosec
	w.header.VertexDataSize = uint32(len(storedVertex))
	w.header.IndexDataSize = uint32(len(storedIndex))
	w.header.Reserved[0] = uint32(w.compression)
	w.header.Reserved[1] = 0
	if w.checksum {
		w.header.Reserved[1] = 1
	}

	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	buf.Grow(section.HeaderSize + len(w.objects)*section.ObjectSize +
		len(storedVertex) + len(storedIndex) + section.ChecksumSize)

	buf.MustWrite(w.header.Bytes())
	for i := range w.objects {
		buf.MustWrite(w.objects[i].Bytes())
	}
	buf.MustWrite(storedVertex)
	buf.MustWrite(storedIndex)

	if w.checksum {
		engine := endian.GetLittleEndianEngine()
		buf.B = engine.AppendUint64(buf.B, section.Checksum(buf.B))
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Reader holds a parsed mesh container. Blobs are decompressed and ready for
// the blob package decoders.
type Reader struct {
	Header  section.EncodeHeader
	Objects []section.EncodeObject

	// VertexBlob and IndexBlob are the stored blobs after decompression.
	VertexBlob []byte
	IndexBlob  []byte
}

// NewReader parses and validates a container produced by Writer.Finish.
//
// Validation order follows the trust chain: magic tag first, then the
// checksum trailer when present, then structural bounds, then decompression.
// Nothing derived from the header is used before the magic matches.
func NewReader(data []byte) (*Reader, error) {
	header, err := section.ParseEncodeHeader(data)
	if err != nil {
		return nil, err
	}

	body := data[section.HeaderSize:]

	if header.Reserved[1]&1 != 0 {
		if len(body) < section.ChecksumSize {
			return nil, errs.ErrInvalidPayloadOffset
		}

		engine := endian.GetLittleEndianEngine()
		trailerOff := len(data) - section.ChecksumSize
		want := engine.Uint64(data[trailerOff:])
		if section.Checksum(data[:trailerOff]) != want {
			return nil, errs.ErrChecksumMismatch
		}

		body = data[section.HeaderSize:trailerOff]
	}

	objectBytes := uint64(header.GroupCount) * section.ObjectSize
	if objectBytes > uint64(len(body)) {
		return nil, errs.ErrInvalidObjectCount
	}

	objects := make([]section.EncodeObject, header.GroupCount)
	for i := range objects {
		if err := objects[i].Parse(body[i*section.ObjectSize : (i+1)*section.ObjectSize]); err != nil {
			return nil, err
		}
	}

	payload := body[objectBytes:]
	if uint64(header.VertexDataSize)+uint64(header.IndexDataSize) > uint64(len(payload)) {
		return nil, errs.ErrInvalidPayloadOffset
	}

	storedVertex := payload[:header.VertexDataSize]
	storedIndex := payload[header.VertexDataSize : uint64(header.VertexDataSize)+uint64(header.IndexDataSize)]

	compressionType := format.CompressionType(header.Reserved[0] & 0xFF) //nolint:gosec
	codec, err := compress.CreateCodec(compressionType, "container")
	if err != nil {
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrInvalidCompression, header.Reserved[0]&0xFF)
	}

	vertexBlob, err := codec.Decompress(storedVertex)
	if err != nil {
		return nil, fmt.Errorf("decompress vertex blob: %w", err)
	}
	indexBlob, err := codec.Decompress(storedIndex)
	if err != nil {
		return nil, fmt.Errorf("decompress index blob: %w", err)
	}

	return &Reader{
		Header:     header,
		Objects:    objects,
		VertexBlob: vertexBlob,
		IndexBlob:  indexBlob,
	}, nil
}
