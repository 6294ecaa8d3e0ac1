package blob

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/meshcodec/errs"
)

func TestEncodeVertexBuffer_RoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, tc := range []struct {
		name        string
		vertexCount int
		vertexSize  int
	}{
		{name: "single byte records", vertexCount: 100, vertexSize: 1},
		{name: "odd stride", vertexCount: 77, vertexSize: 3},
		{name: "quantized position", vertexCount: 256, vertexSize: 8},
		{name: "full attribute record", vertexCount: 1000, vertexSize: 16},
		{name: "non multiple of four stride", vertexCount: 50, vertexSize: 10},
		{name: "max record size", vertexCount: 10, vertexSize: MaxVertexSize},
		{name: "multi block", vertexCount: 1000, vertexSize: 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data := make([]byte, tc.vertexCount*tc.vertexSize)
			rng.Read(data)

			encoded, err := EncodeVertexBuffer(data, tc.vertexSize)
			require.NoError(t, err)
			require.LessOrEqual(t, len(encoded), EncodeVertexBufferBound(tc.vertexCount, tc.vertexSize))

			decoded, err := DecodeVertexBuffer(encoded, tc.vertexCount, tc.vertexSize)
			require.NoError(t, err)
			require.Equal(t, data, decoded)
		})
	}
}

func TestEncodeVertexBuffer_ConstantRecords(t *testing.T) {
	// Identical records produce zero deltas after the first block entry, so the
	// blob should collapse to roughly the selector overhead.
	const vertexSize = 16
	const vertexCount = 1024

	record := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	data := make([]byte, 0, vertexCount*vertexSize)
	for i := 0; i < vertexCount; i++ {
		data = append(data, record...)
	}

	encoded, err := EncodeVertexBuffer(data, vertexSize)
	require.NoError(t, err)

	decoded, err := DecodeVertexBuffer(encoded, vertexCount, vertexSize)
	require.NoError(t, err)
	require.Equal(t, data, decoded)

	// First block pays for the record bytes themselves; later blocks are
	// all-zero selectors only.
	require.Less(t, len(encoded), vertexCount*vertexSize/4)
}

func TestEncodeVertexBuffer_SmallDeltas(t *testing.T) {
	// Slowly varying channels exercise the 2-bit and 4-bit packed selectors.
	const vertexSize = 4
	const vertexCount = 600

	data := make([]byte, vertexCount*vertexSize)
	for i := 0; i < vertexCount; i++ {
		data[i*vertexSize+0] = byte(i)      // delta 1 per record
		data[i*vertexSize+1] = byte(i / 2)  // delta 0 or 1
		data[i*vertexSize+2] = byte(i * 7)  // delta 7, needs 4-bit rung
		data[i*vertexSize+3] = byte(i * 31) // delta 31, literal rung
	}

	encoded, err := EncodeVertexBuffer(data, vertexSize)
	require.NoError(t, err)

	decoded, err := DecodeVertexBuffer(encoded, vertexCount, vertexSize)
	require.NoError(t, err)
	require.Equal(t, data, decoded)

	require.Less(t, len(encoded), len(data))
}

func TestEncodeVertexBuffer_Empty(t *testing.T) {
	encoded, err := EncodeVertexBuffer(nil, 12)
	require.NoError(t, err)
	require.Len(t, encoded, vertexHeaderSize)

	decoded, err := DecodeVertexBuffer(encoded, 0, 12)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestEncodeVertexBuffer_Errors(t *testing.T) {
	t.Run("zero record size", func(t *testing.T) {
		_, err := EncodeVertexBuffer([]byte{1, 2, 3}, 0)
		require.ErrorIs(t, err, errs.ErrInvalidRecordSize)
	})

	t.Run("oversized record", func(t *testing.T) {
		_, err := EncodeVertexBuffer(make([]byte, 257), MaxVertexSize+1)
		require.ErrorIs(t, err, errs.ErrInvalidRecordSize)
	})

	t.Run("data not multiple of record size", func(t *testing.T) {
		_, err := EncodeVertexBuffer(make([]byte, 10), 4)
		require.ErrorIs(t, err, errs.ErrInvalidVertexData)
	})
}

func TestDecodeVertexBuffer_Errors(t *testing.T) {
	valid, err := EncodeVertexBuffer(make([]byte, 64), 16)
	require.NoError(t, err)

	t.Run("invalid record size", func(t *testing.T) {
		_, err := DecodeVertexBuffer(valid, 4, 0)
		require.ErrorIs(t, err, errs.ErrInvalidRecordSize)
	})

	t.Run("negative count", func(t *testing.T) {
		_, err := DecodeVertexBuffer(valid, -1, 16)
		require.ErrorIs(t, err, errs.ErrInvalidVertexCount)
	})

	t.Run("short blob", func(t *testing.T) {
		_, err := DecodeVertexBuffer([]byte{0xA1}, 4, 16)
		require.ErrorIs(t, err, errs.ErrInvalidBlobHeader)
	})

	t.Run("wrong blob type", func(t *testing.T) {
		bad := append([]byte{}, valid...)
		bad[0] = 0xE1
		_, err := DecodeVertexBuffer(bad, 4, 16)
		require.ErrorIs(t, err, errs.ErrInvalidBlobHeader)
	})

	t.Run("unsupported version", func(t *testing.T) {
		bad := append([]byte{}, valid...)
		bad[0] = bad[0]&0xF0 | 0x0F
		_, err := DecodeVertexBuffer(bad, 4, 16)
		require.ErrorIs(t, err, errs.ErrUnsupportedBlobVersion)
	})

	t.Run("record size mismatch", func(t *testing.T) {
		_, err := DecodeVertexBuffer(valid, 4, 12)
		require.ErrorIs(t, err, errs.ErrRecordSizeMismatch)
	})
}

func TestDecodeVertexBuffer_TruncatedPayload(t *testing.T) {
	rng := rand.New(rand.NewSource(17))

	const vertexCount = 300
	const vertexSize = 7

	data := make([]byte, vertexCount*vertexSize)
	rng.Read(data)

	encoded, err := EncodeVertexBuffer(data, vertexSize)
	require.NoError(t, err)

	// Any truncation past the two header bytes decodes into a fully sized
	// result; corrupted trailing records are acceptable, partial output is not.
	for size := vertexHeaderSize; size < len(encoded); size += 13 {
		decoded, err := DecodeVertexBuffer(encoded[:size], vertexCount, vertexSize)
		require.NoError(t, err, "prefix size %d", size)
		require.Len(t, decoded, vertexCount*vertexSize, "prefix size %d", size)
	}
}

func TestDecodeVertexBuffer_Garbage(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 256; trial++ {
		blob := make([]byte, 2+rng.Intn(300))
		rng.Read(blob)
		blob[0] = 0xA1 // valid header byte
		blob[1] = 11   // record size 12

		decoded, err := DecodeVertexBuffer(blob, 64, 12)
		require.NoError(t, err)
		require.Len(t, decoded, 64*12)
	}
}

func TestEncodeVertexBufferBound(t *testing.T) {
	require.Equal(t, 0, EncodeVertexBufferBound(10, 0))
	require.Equal(t, 0, EncodeVertexBufferBound(10, MaxVertexSize+1))
	require.Equal(t, vertexHeaderSize, EncodeVertexBufferBound(0, 16))

	// One block of 100 records at stride 16: header + 4 selector bytes + raw
	// payload worst case.
	require.Equal(t, 2+4+100*16, EncodeVertexBufferBound(100, 16))

	// 1000 records split into 4 blocks at stride 6 (2 selector bytes each).
	require.Equal(t, 2+4*2+1000*6, EncodeVertexBufferBound(1000, 6))
}
