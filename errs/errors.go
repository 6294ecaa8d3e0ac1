// Package errs defines the sentinel error values shared across meshcodec packages.
//
// All errors are plain sentinel values so callers can classify failures with
// errors.Is. Packages wrap them with fmt.Errorf("...: %w", err) when extra
// context helps.
package errs

import "errors"

var (
	// ErrInvalidHeaderSize indicates a container header buffer is not the expected size.
	ErrInvalidHeaderSize = errors.New("meshcodec: invalid header size")

	// ErrInvalidMagicNumber indicates the leading 4-byte magic tag of a container
	// does not match the expected signature. Nothing after the magic is trusted.
	ErrInvalidMagicNumber = errors.New("meshcodec: invalid magic number")

	// ErrInvalidBlobHeader indicates an encoded blob is empty or its leading
	// format tag byte does not identify a meshcodec blob.
	ErrInvalidBlobHeader = errors.New("meshcodec: invalid blob header")

	// ErrUnsupportedBlobVersion indicates a blob carries a format version this
	// build does not understand. Encoder and decoder versions must match.
	ErrUnsupportedBlobVersion = errors.New("meshcodec: unsupported blob version")

	// ErrTruncatedBlob indicates an encoded blob is too short to contain the
	// structure its header promises.
	ErrTruncatedBlob = errors.New("meshcodec: truncated blob")

	// ErrInvalidIndexCount indicates an index count that is negative or not a
	// multiple of 3 (index buffers are triangle lists).
	ErrInvalidIndexCount = errors.New("meshcodec: index count must be a non-negative multiple of 3")

	// ErrIndexOutOfRange indicates an index value at encode time is not below
	// the declared vertex count.
	ErrIndexOutOfRange = errors.New("meshcodec: index value out of range of vertex count")

	// ErrInvalidVertexCount indicates a negative vertex count.
	ErrInvalidVertexCount = errors.New("meshcodec: invalid vertex count")

	// ErrInvalidRecordSize indicates a vertex record size outside the supported
	// 1..256 byte range.
	ErrInvalidRecordSize = errors.New("meshcodec: vertex record size must be between 1 and 256 bytes")

	// ErrInvalidVertexData indicates vertex data whose length is not a multiple
	// of the record size.
	ErrInvalidVertexData = errors.New("meshcodec: vertex data length is not a multiple of record size")

	// ErrRecordSizeMismatch indicates the record size supplied at decode time
	// differs from the record size the blob was encoded with.
	ErrRecordSizeMismatch = errors.New("meshcodec: vertex record size does not match encoded stream")

	// ErrSizeOverflow indicates the worst-case output size computation overflowed.
	ErrSizeOverflow = errors.New("meshcodec: encoded size bound overflows")

	// ErrChecksumMismatch indicates a container payload failed xxHash64 verification.
	ErrChecksumMismatch = errors.New("meshcodec: payload checksum mismatch")

	// ErrInvalidCompression indicates an unknown compression type tag.
	ErrInvalidCompression = errors.New("meshcodec: invalid compression type")

	// ErrInvalidObjectCount indicates a container declares more object records
	// than its payload can hold.
	ErrInvalidObjectCount = errors.New("meshcodec: invalid object count")

	// ErrInvalidPayloadOffset indicates container blob sizes exceed the payload.
	ErrInvalidPayloadOffset = errors.New("meshcodec: blob sizes exceed container payload")
)
