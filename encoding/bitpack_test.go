package encoding

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackedSizes(t *testing.T) {
	require.Equal(t, 0, Packed2Size(0))
	require.Equal(t, 1, Packed2Size(1))
	require.Equal(t, 1, Packed2Size(4))
	require.Equal(t, 2, Packed2Size(5))

	require.Equal(t, 0, Packed4Size(0))
	require.Equal(t, 1, Packed4Size(1))
	require.Equal(t, 1, Packed4Size(2))
	require.Equal(t, 2, Packed4Size(3))
}

func TestPacked2Layout(t *testing.T) {
	// MSB-first: 1,2,3,0 -> 01 10 11 00
	out := AppendPacked2(nil, []byte{1, 2, 3, 0})
	require.Equal(t, []byte{0b01_10_11_00}, out)

	// Partial final byte is zero padded.
	out = AppendPacked2(nil, []byte{3})
	require.Equal(t, []byte{0b11_00_00_00}, out)
}

func TestPacked4Layout(t *testing.T) {
	out := AppendPacked4(nil, []byte{0xA, 0x5})
	require.Equal(t, []byte{0xA5}, out)

	out = AppendPacked4(nil, []byte{0xF})
	require.Equal(t, []byte{0xF0}, out)
}

func TestPacked2RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{1, 3, 4, 7, 16, 255, 256} {
		vals := make([]byte, n)
		for i := range vals {
			vals[i] = byte(rng.Intn(4))
		}

		packed := AppendPacked2(nil, vals)
		require.Len(t, packed, Packed2Size(n))

		got := make([]byte, n)
		UnpackPacked2(packed, got)
		require.Equal(t, vals, got)
	}
}

func TestPacked4RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	for _, n := range []int{1, 2, 5, 16, 255, 256} {
		vals := make([]byte, n)
		for i := range vals {
			vals[i] = byte(rng.Intn(16))
		}

		packed := AppendPacked4(nil, vals)
		require.Len(t, packed, Packed4Size(n))

		got := make([]byte, n)
		UnpackPacked4(packed, got)
		require.Equal(t, vals, got)
	}
}
