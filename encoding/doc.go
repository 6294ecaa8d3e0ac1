// Package encoding provides the low-level primitives shared by the meshcodec
// blob codecs: a bounds-checked read cursor for untrusted input, zigzag
// mapping helpers for signed byte and index deltas, and fixed-width bit group
// packing for the vertex codec's per-channel payloads.
//
// The Reader cursor is the only way decode paths touch raw input. Every read
// reports success explicitly instead of relying on slice bounds panics, so a
// corrupted or truncated blob degrades into zero values rather than a fault.
// Encoders append into caller-sized buffers and never read untrusted data, so
// they use plain append helpers instead of a cursor.
package encoding
