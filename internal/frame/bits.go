package frame

// appendBits expands each byte into 8 bools, most-significant bit first.
func appendBits(dst []bool, b ...byte) []bool {
	for _, bb := range b {
		for i := 7; i >= 0; i-- {
			dst = append(dst, (bb>>uint(i))&1 == 1)
		}
	}
	return dst
}

// packBits is the inverse of appendBits. A trailing partial byte is
// zero-padded on the right.
func packBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

func headerBits(length uint32) []bool {
	bits := make([]bool, HeaderBits)
	for i := range bits {
		bits[i] = (length>>uint(HeaderBits-1-i))&1 == 1
	}
	return bits
}
