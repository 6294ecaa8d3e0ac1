// Package blob implements the two meshcodec binary codecs: the triangle index
// codec and the fixed-stride vertex codec.
//
// Both codecs are purely functional over their input slices. Each call owns
// its own prediction state, discarded on return, so concurrent calls on
// disjoint buffers need no synchronization.
//
// # Index blob format (version 1)
//
// Byte 0 is 0xE0|version. The next indexCount/3 bytes hold exactly one code
// byte per triangle; the remainder of the blob is an auxiliary byte stream
// consumed in triangle order. Triangles are predicted from two fixed-capacity
// rolling tables: an 8-entry FIFO of recently emitted edges and a 16-entry
// FIFO of recently referenced vertices. A triangle sharing an edge with a
// recent triangle costs a single code byte; cold vertices fall back to
// varint-coded deltas from the last literal index.
//
// # Vertex blob format (version 1)
//
// Byte 0 is 0xA0|version, byte 1 is recordSize-1. Records are processed in
// blocks of up to 256. Within a block, each byte position of the record (a
// "channel") is delta-coded against the previous record and packed with a
// per-channel 2-bit selector choosing between all-zero, 2-bit, 4-bit, or
// literal byte deltas.
//
// # Untrusted input
//
// Decoders validate only the leading format bytes. Any other corruption
// degrades into garbage values: every read goes through a bounds-checked
// cursor, failed reads substitute zeros, and decoding always terminates with
// a fully populated result of the requested size. Callers that need integrity
// must checksum blobs externally (see the section package).
package blob
