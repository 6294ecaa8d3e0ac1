package compress

// ZstdCompressor provides Zstandard compression for encoded mesh blobs.
//
// Zstd gives the best ratio of the built-in codecs on delta-heavy vertex
// payloads and is the right default for storage and network transmission
// where decode happens less often than encode bandwidth matters.
//
// Two backends exist: the default pure-Go backend (klauspost/compress) and a
// cgo backend (valyala/gozstd) selected with the meshcodec_cgo_zstd build tag
// for hosts where the native library is available.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
