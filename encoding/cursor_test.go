package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderReadUint8(t *testing.T) {
	r := NewReader([]byte{0xAA, 0xBB})

	b, ok := r.ReadUint8()
	require.True(t, ok)
	require.Equal(t, byte(0xAA), b)

	b, ok = r.ReadUint8()
	require.True(t, ok)
	require.Equal(t, byte(0xBB), b)
	require.Equal(t, 0, r.Remaining())

	// Exhausted reads fail without advancing.
	b, ok = r.ReadUint8()
	require.False(t, ok)
	require.Equal(t, byte(0), b)
	require.Equal(t, 2, r.Pos())
}

func TestReaderReadBytes(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})

	b, ok := r.ReadBytes(3)
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, b)

	// Partial reads fail and do not consume the remainder.
	b, ok = r.ReadBytes(2)
	require.False(t, ok)
	require.Nil(t, b)
	require.Equal(t, 1, r.Remaining())

	b, ok = r.ReadBytes(1)
	require.True(t, ok)
	require.Equal(t, []byte{4}, b)

	_, ok = r.ReadBytes(-1)
	require.False(t, ok)
}

func TestReaderReadBytesZero(t *testing.T) {
	r := NewReader(nil)
	b, ok := r.ReadBytes(0)
	require.True(t, ok)
	require.Empty(t, b)
}

func TestReaderReadUvarint(t *testing.T) {
	buf := AppendUvarint(nil, 0)
	buf = AppendUvarint(buf, 127)
	buf = AppendUvarint(buf, 128)
	buf = AppendUvarint(buf, 1<<40)
	buf = AppendUvarint(buf, 0xFFFFFFFFFFFFFFFF)

	r := NewReader(buf)
	for _, want := range []uint64{0, 127, 128, 1 << 40, 0xFFFFFFFFFFFFFFFF} {
		got, ok := r.ReadUvarint()
		require.True(t, ok)
		require.Equal(t, want, got)
	}
	require.Equal(t, 0, r.Remaining())
}

func TestReaderReadUvarintTruncated(t *testing.T) {
	// Continuation bit set with no following byte.
	r := NewReader([]byte{0x80})
	_, ok := r.ReadUvarint()
	require.False(t, ok)
}

func TestReaderReadUvarintOverflow(t *testing.T) {
	// 11 continuation bytes can never terminate within 64 bits.
	data := make([]byte, 11)
	for i := range data {
		data[i] = 0xFF
	}

	r := NewReader(data)
	_, ok := r.ReadUvarint()
	require.False(t, ok)
}

func TestZeroReaderIsExhausted(t *testing.T) {
	var r Reader
	require.Equal(t, 0, r.Remaining())

	_, ok := r.ReadUint8()
	require.False(t, ok)
}
