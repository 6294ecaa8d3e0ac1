package container

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/meshcodec/blob"
	"github.com/arloliu/meshcodec/errs"
	"github.com/arloliu/meshcodec/format"
	"github.com/arloliu/meshcodec/section"
)

// buildTestMesh encodes a small grid mesh into blobs and returns the raw
// inputs alongside.
func buildTestMesh(t *testing.T) (indices []uint32, vertexData []byte, indexBlob, vertexBlob []byte) {
	t.Helper()

	const dim = 9
	for y := uint32(0); y < dim-1; y++ {
		for x := uint32(0); x < dim-1; x++ {
			v := y*dim + x
			indices = append(indices, v, v+1, v+dim, v+dim, v+1, v+dim+1)
		}
	}

	rng := rand.New(rand.NewSource(11))
	vertexData = make([]byte, dim*dim*8)
	rng.Read(vertexData)

	var err error
	indexBlob, err = blob.EncodeIndexBuffer(indices, dim*dim)
	require.NoError(t, err)
	vertexBlob, err = blob.EncodeVertexBuffer(vertexData, 8)
	require.NoError(t, err)

	return indices, vertexData, indexBlob, vertexBlob
}

func TestContainer_RoundTrip(t *testing.T) {
	indices, vertexData, indexBlob, vertexBlob := buildTestMesh(t)

	for _, compressionType := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(compressionType.String(), func(t *testing.T) {
			w, err := NewWriter(WithCompression(compressionType))
			require.NoError(t, err)

			w.SetQuantization([3]float32{-1, 0, 2}, 4.5, [2]float32{0, 0}, [2]float32{1, 2})
			w.SetVertexBlob(vertexBlob, len(vertexData)/8)
			w.SetIndexBlob(indexBlob, len(indices))
			w.AddGroup(0, uint32(len(indices)/2), 5)
			w.AddGroup(uint32(len(indices)/2), uint32(len(indices)-len(indices)/2), 9)

			packed, err := w.Finish()
			require.NoError(t, err)

			r, err := NewReader(packed)
			require.NoError(t, err)

			require.Equal(t, uint32(len(vertexData)/8), r.Header.VertexCount)
			require.Equal(t, uint32(len(indices)), r.Header.IndexCount)
			require.Equal(t, [3]float32{-1, 0, 2}, r.Header.PosOffset)
			require.Equal(t, float32(4.5), r.Header.PosScale)
			require.Equal(t, [2]float32{1, 2}, r.Header.UVScale)
			require.Len(t, r.Objects, 2)
			require.Equal(t, uint32(5), r.Objects[0].MaterialLength)
			require.Equal(t, uint32(len(indices)/2), r.Objects[1].IndexOffset)

			require.Equal(t, vertexBlob, r.VertexBlob)
			require.Equal(t, indexBlob, r.IndexBlob)

			decodedIdx, err := blob.DecodeIndexBuffer[uint32](r.IndexBlob, int(r.Header.IndexCount))
			require.NoError(t, err)
			require.Equal(t, indices, decodedIdx)

			decodedVtx, err := blob.DecodeVertexBuffer(r.VertexBlob, int(r.Header.VertexCount), 8)
			require.NoError(t, err)
			require.Equal(t, vertexData, decodedVtx)
		})
	}
}

func TestContainer_ChecksumDetectsFlips(t *testing.T) {
	_, _, indexBlob, vertexBlob := buildTestMesh(t)

	w, err := NewWriter()
	require.NoError(t, err)
	w.SetVertexBlob(vertexBlob, len(vertexBlob))
	w.SetIndexBlob(indexBlob, 384)

	packed, err := w.Finish()
	require.NoError(t, err)

	// Flip one payload byte; the trailer must catch it.
	corrupted := append([]byte{}, packed...)
	corrupted[section.HeaderSize+10] ^= 0x40

	_, err = NewReader(corrupted)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestContainer_ChecksumDisabled(t *testing.T) {
	_, _, indexBlob, vertexBlob := buildTestMesh(t)

	w, err := NewWriter(WithChecksum(false))
	require.NoError(t, err)
	w.SetVertexBlob(vertexBlob, 81)
	w.SetIndexBlob(indexBlob, 384)

	packed, err := w.Finish()
	require.NoError(t, err)

	// No trailer: exactly header + blobs.
	require.Len(t, packed, section.HeaderSize+len(vertexBlob)+len(indexBlob))

	r, err := NewReader(packed)
	require.NoError(t, err)
	require.Equal(t, vertexBlob, r.VertexBlob)
	require.Equal(t, indexBlob, r.IndexBlob)
}

func TestContainer_EmptyMesh(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)

	packed, err := w.Finish()
	require.NoError(t, err)

	r, err := NewReader(packed)
	require.NoError(t, err)
	require.Empty(t, r.Objects)
	require.Empty(t, r.VertexBlob)
	require.Empty(t, r.IndexBlob)
}

func TestNewWriter_InvalidCompression(t *testing.T) {
	_, err := NewWriter(WithCompression(format.CompressionType(0xEE)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestNewReader_Errors(t *testing.T) {
	_, _, indexBlob, vertexBlob := buildTestMesh(t)

	w, err := NewWriter()
	require.NoError(t, err)
	w.SetVertexBlob(vertexBlob, 81)
	w.SetIndexBlob(indexBlob, 384)
	w.AddGroup(0, 384, 0)

	packed, err := w.Finish()
	require.NoError(t, err)

	t.Run("short input", func(t *testing.T) {
		_, err := NewReader(packed[:section.HeaderSize-1])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("wrong magic", func(t *testing.T) {
		bad := append([]byte{}, packed...)
		bad[0] = 'Q'
		_, err := NewReader(bad)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("truncated payload", func(t *testing.T) {
		// Drop the tail; with the checksum flag set the trailer is gone too,
		// so this fails the integrity check before any structural check.
		_, err := NewReader(packed[:len(packed)-20])
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("object count beyond body", func(t *testing.T) {
		w, err := NewWriter(WithChecksum(false))
		require.NoError(t, err)
		w.SetVertexBlob(vertexBlob, 81)
		packed, err := w.Finish()
		require.NoError(t, err)

		header, err := section.ParseEncodeHeader(packed)
		require.NoError(t, err)
		header.GroupCount = 1 << 20
		bad := append(header.Bytes(), packed[section.HeaderSize:]...)

		_, err = NewReader(bad)
		require.ErrorIs(t, err, errs.ErrInvalidObjectCount)
	})

	t.Run("blob sizes beyond payload", func(t *testing.T) {
		w, err := NewWriter(WithChecksum(false))
		require.NoError(t, err)
		w.SetVertexBlob(vertexBlob, 81)
		packed, err := w.Finish()
		require.NoError(t, err)

		header, err := section.ParseEncodeHeader(packed)
		require.NoError(t, err)
		header.VertexDataSize = uint32(len(packed)) * 2
		bad := append(header.Bytes(), packed[section.HeaderSize:]...)

		_, err = NewReader(bad)
		require.ErrorIs(t, err, errs.ErrInvalidPayloadOffset)
	})

	t.Run("unknown compression tag", func(t *testing.T) {
		w, err := NewWriter(WithChecksum(false))
		require.NoError(t, err)
		w.SetVertexBlob(vertexBlob, 81)
		packed, err := w.Finish()
		require.NoError(t, err)

		header, err := section.ParseEncodeHeader(packed)
		require.NoError(t, err)
		header.Reserved[0] = 0xEE
		bad := append(header.Bytes(), packed[section.HeaderSize:]...)

		_, err = NewReader(bad)
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})
}
