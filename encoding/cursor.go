package encoding

// Reader is a byte-oriented read cursor over untrusted input.
//
// Every read is bounds-checked and reports success through an explicit ok
// result. A failed read never advances past the end of the data and never
// panics; callers substitute zero values and keep going, which is how the
// decoders satisfy the "terminates with garbage, never traps" contract for
// corrupted blobs.
//
// The zero Reader is an exhausted reader over no data.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over data. The Reader borrows the slice and
// never modifies it.
func NewReader(data []byte) Reader {
	return Reader{data: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int {
	return r.pos
}

// ReadUint8 reads a single byte. Returns (0, false) when exhausted.
//
// Named ReadUint8 rather than ReadByte so the method set stays clear of the
// io.ByteReader signature, which requires an error result this type
// deliberately does not produce.
func (r *Reader) ReadUint8() (byte, bool) {
	if r.pos >= len(r.data) {
		return 0, false
	}

	b := r.data[r.pos]
	r.pos++

	return b, true
}

// ReadBytes reads exactly n bytes and returns a subslice of the underlying
// data. If fewer than n bytes remain, it returns (nil, false) and does not
// advance, so subsequent reads fail deterministically.
func (r *Reader) ReadBytes(n int) ([]byte, bool) {
	if n < 0 || len(r.data)-r.pos < n {
		return nil, false
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, true
}

// ReadUvarint reads an unsigned LEB128 varint.
//
// The shift is capped at 63 bits so a malformed continuation run terminates
// after at most 10 bytes. Returns (0, false) on exhaustion or overflow; the
// cursor stays wherever the scan stopped, which keeps decoding deterministic
// for any input.
func (r *Reader) ReadUvarint() (uint64, bool) {
	var val uint64
	var shift uint

	for {
		b, ok := r.ReadUint8()
		if !ok {
			return 0, false
		}

		if shift == 63 && b > 1 {
			return 0, false // would overflow uint64
		}

		val |= uint64(b&0x7F) << shift
		if b < 0x80 {
			return val, true
		}

		shift += 7
		if shift > 63 {
			return 0, false
		}
	}
}
