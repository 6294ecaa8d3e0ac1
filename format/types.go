package format

type (
	BlobType        uint8
	CompressionType uint8
)

const (
	// TypeIndexBlob tags the high nibble of an encoded index blob's leading byte.
	TypeIndexBlob BlobType = 0xE
	// TypeVertexBlob tags the high nibble of an encoded vertex blob's leading byte.
	TypeVertexBlob BlobType = 0xA

	// IndexBlobVersion is the index blob format version this build reads and writes.
	IndexBlobVersion uint8 = 1
	// VertexBlobVersion is the vertex blob format version this build reads and writes.
	VertexBlobVersion uint8 = 1

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// MagicTag is the 4-byte signature at the start of a container header.
// Consumers must reject any buffer whose leading bytes differ before trusting
// counts or offsets derived from it.
var MagicTag = [4]byte{'O', 'P', 'T', 'M'}

func (b BlobType) String() string {
	switch b {
	case TypeIndexBlob:
		return "Index"
	case TypeVertexBlob:
		return "Vertex"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a human-readable name to a CompressionType tag.
// Returns CompressionNone and false for unknown names.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return CompressionNone, false
	}
}
