// Package meshcodec provides compact binary encoding for 3D mesh geometry:
// a triangle index buffer codec, a fixed-size vertex record codec, and the
// quantization helpers used to prepare attribute data for encoding.
//
// The codecs target meshes that have been optimized for vertex cache and
// vertex fetch locality; on such input the index codec typically spends a
// byte or so per triangle and the vertex codec well under the raw record
// size, and both outputs compress further under general-purpose compressors.
//
// This package re-exports the core blob codecs for convenience. The full
// surface lives in the subpackages:
//
//   - blob: the index and vertex blob codecs
//   - quant: offset/scale derivation and unorm quantization
//   - section: container header and draw-group records
//   - container: packing blobs, headers, compression, and checksums
//   - compress: optional post-compression codecs for stored blobs
//
// Decoders are safe for untrusted input: structural problems surface as
// typed errors from the errs package, and any deeper corruption decodes into
// garbage values without panics, out-of-bounds reads, or unbounded work.
package meshcodec

import "github.com/arloliu/meshcodec/blob"

// Index constrains decoded index element types to 16-bit or 32-bit unsigned
// integers. Alias of blob.Index.
type Index = blob.Index

// EncodeIndexBuffer encodes a triangle list into a compact blob.
// See blob.EncodeIndexBuffer.
func EncodeIndexBuffer(indices []uint32, vertexCount int) ([]byte, error) {
	return blob.EncodeIndexBuffer(indices, vertexCount)
}

// EncodeIndexBufferBound returns the worst-case encoded size for an index
// buffer. See blob.EncodeIndexBufferBound.
func EncodeIndexBufferBound(indexCount, vertexCount int) int {
	return blob.EncodeIndexBufferBound(indexCount, vertexCount)
}

// DecodeIndexBuffer decodes an index blob into indexCount indices of type T.
// See blob.DecodeIndexBuffer.
func DecodeIndexBuffer[T Index](encoded []byte, indexCount int) ([]T, error) {
	return blob.DecodeIndexBuffer[T](encoded, indexCount)
}

// EncodeVertexBuffer encodes fixed-size byte records into a compact blob.
// See blob.EncodeVertexBuffer.
func EncodeVertexBuffer(vertexData []byte, vertexSize int) ([]byte, error) {
	return blob.EncodeVertexBuffer(vertexData, vertexSize)
}

// EncodeVertexBufferBound returns the worst-case encoded size for a vertex
// buffer. See blob.EncodeVertexBufferBound.
func EncodeVertexBufferBound(vertexCount, vertexSize int) int {
	return blob.EncodeVertexBufferBound(vertexCount, vertexSize)
}

// DecodeVertexBuffer decodes a vertex blob into vertexCount records of
// vertexSize bytes. See blob.DecodeVertexBuffer.
func DecodeVertexBuffer(encoded []byte, vertexCount, vertexSize int) ([]byte, error) {
	return blob.DecodeVertexBuffer(encoded, vertexCount, vertexSize)
}
