package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferBasics(t *testing.T) {
	bb := NewByteBuffer(64)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 64, bb.Cap())

	bb.MustWrite([]byte("hello"))
	require.Equal(t, 5, bb.Len())
	require.Equal(t, []byte("hello"), bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 64, bb.Cap())
}

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.Grow(1024)
	require.GreaterOrEqual(t, bb.Cap(), 1024)

	// Growing within capacity is a no-op.
	capBefore := bb.Cap()
	bb.Grow(16)
	require.Equal(t, capBefore, bb.Cap())
}

func TestByteBufferWriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte{1, 2, 3})

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.Equal(t, []byte{1, 2, 3}, out.Bytes())
}

func TestByteBufferPoolReuse(t *testing.T) {
	p := NewByteBufferPool(32, 128)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	bb2 := p.Get()
	require.Equal(t, 0, bb2.Len()) // reset on Put

	// Oversized buffers are discarded instead of pooled.
	big := p.Get()
	big.Grow(4096)
	p.Put(big)

	p.Put(nil) // must not panic
}

func TestDefaultBlobPool(t *testing.T) {
	bb := GetBlobBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	PutBlobBuffer(bb)
}
