package frame

import (
	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/golay"
)

// Coding selects how payload bits are laid out after the length header.
// The header itself is never coded.
type Coding interface {
	// String names the coding for logs and CLI output.
	String() string

	encode(bits []bool) []bool
	decode(bits []bool, size int) []byte
	encodedLen(size int) int
}

// Plain returns the identity coding: 8 carried bits per payload byte.
func Plain() Coding { return plain{} }

// Golay returns the extended Golay(24,12) coding. Every 12 payload bits are
// carried as a 24 bit codeword, so up to 3 flipped bits per codeword are
// corrected on extraction.
func Golay() Coding { return golayCoding{} }

var _ Coding = plain{}

type plain struct{}

func (plain) String() string { return "plain" }

func (plain) encode(bits []bool) []bool { return bits }

func (plain) decode(bits []bool, size int) []byte {
	return packBits(bits[:size])
}

func (plain) encodedLen(size int) int { return size }

var _ Coding = golayCoding{}

type golayCoding struct{}

func (golayCoding) String() string { return "golay" }

func (golayCoding) encode(bits []bool) []bool {
	if len(bits) == 0 {
		return nil
	}
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range bits {
		w.WriteBool(v)
	}
	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	_ = enc.Encode(w.Data(), len(bits))

	r := bitstream.NewBitReader(encoded, 0, 0)
	r.SetBits(enc.Bits())
	out := make([]bool, enc.Bits())
	for i := range out {
		out[i], _ = r.ReadBitAt(i)
	}
	return out
}

func (golayCoding) decode(bits []bool, size int) []byte {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range bits {
		w.WriteBool(v)
	}
	var decoded []uint64
	dec := golay.NewDecoder(w.Data(), w.Bits())
	_ = dec.Decode(&decoded)

	r := bitstream.NewBitReader(decoded, 0, 0)
	out := make([]bool, size)
	for i := range out {
		out[i], _ = r.ReadBitAt(i)
	}
	return packBits(out)
}

func (golayCoding) encodedLen(size int) int {
	return golay.EncodedBits(size)
}
