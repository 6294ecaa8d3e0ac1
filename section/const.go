// Package section defines the fixed-layout container metadata records that
// accompany encoded mesh blobs: the EncodeHeader describing a packed mesh and
// the per-group EncodeObject records.
//
// These are passive descriptor records with no behavior beyond serialization.
// Their one hard contract: the leading 4-byte magic tag must match before any
// count or offset derived from a header is trusted.
package section

const (
	// HeaderSize is the serialized size of an EncodeHeader in bytes.
	HeaderSize = 64

	// ObjectSize is the serialized size of an EncodeObject in bytes.
	ObjectSize = 16

	// ChecksumSize is the size of the optional xxHash64 payload trailer.
	ChecksumSize = 8
)
