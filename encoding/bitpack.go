package encoding

// Fixed-width bit group packing for the vertex codec's per-channel payloads.
//
// Values are packed MSB-first within each byte, in stream order: with 2-bit
// groups, value i lands in byte i/4 at shift 6-2*(i%4); with 4-bit groups,
// value i lands in byte i/2 at shift 4-4*(i%2). The final byte is
// zero-padded.

// Packed2Size returns the byte size of n 2-bit groups.
func Packed2Size(n int) int {
	return (n + 3) / 4
}

// Packed4Size returns the byte size of n 4-bit groups.
func Packed4Size(n int) int {
	return (n + 1) / 2
}

// AppendPacked2 appends the low 2 bits of each value in vals to dst.
// Values must already be < 4.
func AppendPacked2(dst []byte, vals []byte) []byte {
	var cur byte
	for i, v := range vals {
		cur |= (v & 3) << (6 - 2*(i&3))
		if i&3 == 3 {
			dst = append(dst, cur)
			cur = 0
		}
	}

	if len(vals)&3 != 0 {
		dst = append(dst, cur)
	}

	return dst
}

// AppendPacked4 appends the low 4 bits of each value in vals to dst.
// Values must already be < 16.
func AppendPacked4(dst []byte, vals []byte) []byte {
	var cur byte
	for i, v := range vals {
		cur |= (v & 15) << (4 - 4*(i&1))
		if i&1 == 1 {
			dst = append(dst, cur)
			cur = 0
		}
	}

	if len(vals)&1 != 0 {
		dst = append(dst, cur)
	}

	return dst
}

// UnpackPacked2 unpacks len(dst) 2-bit groups from src into dst.
// src must hold at least Packed2Size(len(dst)) bytes.
func UnpackPacked2(src []byte, dst []byte) {
	for i := range dst {
		dst[i] = (src[i>>2] >> (6 - 2*(i&3))) & 3
	}
}

// UnpackPacked4 unpacks len(dst) 4-bit groups from src into dst.
// src must hold at least Packed4Size(len(dst)) bytes.
func UnpackPacked4(src []byte, dst []byte) {
	for i := range dst {
		dst[i] = (src[i>>1] >> (4 - 4*(i&1))) & 15
	}
}
