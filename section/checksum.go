package section

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 digest of a payload.
//
// The blob decoders deliberately accept corrupted payloads (they return
// garbage rather than failing), so integrity is the container's job: writers
// append this digest as a trailer and readers verify it before decoding.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
