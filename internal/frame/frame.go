// Package frame converts a payload into a self-describing bit stream, a 32 bit
// big-endian length header followed by the (optionally coded) payload bits,
// and back.
package frame

import (
	"errors"
	"fmt"
	"math"

	"github.com/yyyoichi/bitstream-go"
)

// HeaderBits is the width of the length header.
const HeaderBits = 32

var (
	ErrFraming          = errors.New("framing error")
	ErrTruncatedHeader  = errors.New("truncated header")
	ErrTruncatedPayload = errors.New("truncated payload")
	ErrEmptyPayload     = errors.New("no hidden message (length is zero)")
	ErrPayloadTooLarge  = errors.New("payload length does not fit the header")
)

// BitSource yields carried bits by stream index.
type BitSource interface {
	Bits() int
	BitAt(at int) bool
}

var _ BitSource = (*Stream)(nil)

// Stream is a framed bit sequence ready to be packed into a carrier.
type Stream struct {
	reader *bitstream.BitReader[uint64]
}

// Bits returns the total stream length: HeaderBits plus the coded payload.
func (s *Stream) Bits() int {
	return s.reader.Bits()
}

// BitAt returns the bit at the given stream index.
func (s *Stream) BitAt(at int) bool {
	bit, _ := s.reader.ReadBitAt(at)
	return bit
}

// Len returns the number of stream bits needed to carry a payload of n bytes.
func Len(n int, c Coding) int {
	return HeaderBits + c.encodedLen(n*8)
}

// Frame builds the stream for payload.
func Frame(payload []byte, c Coding) (*Stream, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %w: %d bytes", ErrFraming, ErrPayloadTooLarge, len(payload))
	}
	bits := headerBits(uint32(len(payload)))
	bits = append(bits, c.encode(appendBits(nil, payload...))...)

	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range bits {
		w.WriteBool(v)
	}
	reader := bitstream.NewBitReader(w.Data(), 0, 0)
	reader.SetBits(w.Bits())
	return &Stream{reader: reader}, nil
}

// Header decodes the length header from src.
func Header(src BitSource) (uint32, error) {
	if avail := src.Bits(); avail < HeaderBits {
		return 0, fmt.Errorf("%w: %w: need %d bits, have %d", ErrTruncatedHeader, ErrFraming, HeaderBits, avail)
	}
	var length uint32
	for i := range HeaderBits {
		length <<= 1
		if src.BitAt(i) {
			length |= 1
		}
	}
	return length, nil
}

// Unframe reads exactly the header and the bits it declares from src and
// returns the payload. Bits after the declared payload are never touched.
func Unframe(src BitSource, c Coding) ([]byte, error) {
	length, err := Header(src)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, fmt.Errorf("%w: %w", ErrFraming, ErrEmptyPayload)
	}
	remain := src.Bits() - HeaderBits
	// every coding carries at least one bit per payload bit
	if uint64(length)*8 > uint64(remain) {
		return nil, truncated(length, uint64(length)*8, remain)
	}
	size := int(length) * 8
	need := c.encodedLen(size)
	if need > remain {
		return nil, truncated(length, uint64(need), remain)
	}
	bits := make([]bool, need)
	for i := range bits {
		bits[i] = src.BitAt(HeaderBits + i)
	}
	return c.decode(bits, size), nil
}

func truncated(length uint32, need uint64, remain int) error {
	return fmt.Errorf("%w: %w: header declares %d bytes (%d bits), %d bits remain",
		ErrTruncatedPayload, ErrFraming, length, need, remain)
}

// MaxPayload returns the largest payload, in bytes, whose stream fits in
// avail bits.
func MaxPayload(avail int, c Coding) int {
	if avail < HeaderBits {
		return 0
	}
	// Len is monotonic in n and never below HeaderBits+8n.
	lo, hi := 0, (avail-HeaderBits)/8
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if Len(mid, c) <= avail {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
