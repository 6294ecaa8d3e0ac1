package encoding

// MaxVarint32Len is the maximum encoded size of a zigzag-mapped 32-bit delta.
const MaxVarint32Len = 5

// AppendUvarint appends val as an unsigned LEB128 varint and returns the
// extended slice.
func AppendUvarint(dst []byte, val uint64) []byte {
	for val >= 0x80 {
		dst = append(dst, byte(val)|0x80)
		val >>= 7
	}

	return append(dst, byte(val))
}

// ZigZag32 maps a signed 32-bit delta to an unsigned value with small
// magnitudes near zero: 0, -1, 1, -2 become 0, 1, 2, 3.
func ZigZag32(v int32) uint32 {
	return uint32(v<<1) ^ uint32(v>>31)
}

// UnZigZag32 inverts ZigZag32.
func UnZigZag32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// ZigZag8 maps a signed byte delta to an unsigned byte, interpreting v as the
// two's-complement difference between adjacent channel bytes.
func ZigZag8(v byte) byte {
	s := int8(v)
	return byte((s << 1) ^ (s >> 7))
}

// UnZigZag8 inverts ZigZag8.
func UnZigZag8(v byte) byte {
	return (v >> 1) ^ -(v & 1)
}
