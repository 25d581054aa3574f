package frame

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bools []bool

func (b bools) Bits() int         { return len(b) }
func (b bools) BitAt(at int) bool { return b[at] }

func collect(src BitSource) bools {
	out := make(bools, src.Bits())
	for i := range out {
		out[i] = src.BitAt(i)
	}
	return out
}

func TestBits(t *testing.T) {
	test := []struct {
		data []byte
	}{
		{data: []byte{0b10101010}},
		{data: []byte{0b11110000, 0b00001111}},
		{data: []byte("Hello")},
		{data: []byte("こんにちは")},
		{data: []byte{}},
	}
	for _, tt := range test {
		bits := appendBits(nil, tt.data...)
		assert.Len(t, bits, len(tt.data)*8)
		assert.Equal(t, tt.data, packBits(bits))
	}
	assert.Equal(t, []bool{false, true, false, false, false, false, false, true}, appendBits(nil, 'A'))
	assert.Equal(t, []byte{0b10100000}, packBits([]bool{true, false, true}))
}

func TestFrame(t *testing.T) {
	t.Run("header is big-endian length", func(t *testing.T) {
		s, err := Frame([]byte("hi"), Plain())
		require.NoError(t, err)
		require.Equal(t, 32+16, s.Bits())
		bits := collect(s)
		for i := range 30 {
			assert.False(t, bits[i], "bit %d", i)
		}
		assert.True(t, bits[30])
		assert.False(t, bits[31])
		// 'h' = 0x68
		assert.Equal(t, []byte("h"), packBits(bits[32:40]))
		assert.Equal(t, Len(2, Plain()), s.Bits())
	})

	t.Run("round trip", func(t *testing.T) {
		for _, c := range []Coding{Plain(), Golay()} {
			for _, payload := range [][]byte{
				[]byte("a"),
				[]byte("hi"),
				[]byte("hello world!"),
				[]byte("こんにちはHello"),
				{0x00, 0xff, 0x01, 0x80},
			} {
				s, err := Frame(payload, c)
				require.NoError(t, err)
				assert.Equal(t, Len(len(payload), c), s.Bits(), c.String())
				out, err := Unframe(s, c)
				require.NoError(t, err, c.String())
				assert.Equal(t, payload, out, c.String())
			}
		}
	})

	t.Run("golay corrects a flipped bit", func(t *testing.T) {
		payload := []byte("error correcting")
		s, err := Frame(payload, Golay())
		require.NoError(t, err)
		assert.Greater(t, s.Bits(), Len(len(payload), Plain()))
		bits := collect(s)
		bits[HeaderBits+5] = !bits[HeaderBits+5]
		out, err := Unframe(bits, Golay())
		require.NoError(t, err)
		assert.Equal(t, payload, out)
	})

	t.Run("trailing bits are ignored", func(t *testing.T) {
		s, err := Frame([]byte("ok"), Plain())
		require.NoError(t, err)
		bits := append(collect(s), true, true, false, true)
		out, err := Unframe(bits, Plain())
		require.NoError(t, err)
		assert.Equal(t, []byte("ok"), out)
	})
}

func TestUnframeErrors(t *testing.T) {
	s, err := Frame([]byte("abc"), Plain())
	require.NoError(t, err)
	full := collect(s)

	test := []struct {
		name    string
		src     bools
		wantErr []error
	}{
		{"no bits", bools{}, []error{ErrTruncatedHeader, ErrFraming}},
		{"short header", full[:31], []error{ErrTruncatedHeader, ErrFraming}},
		{"header only", full[:32], []error{ErrTruncatedPayload, ErrFraming}},
		{"one bit short", full[:len(full)-1], []error{ErrTruncatedPayload, ErrFraming}},
		{"zero length", make(bools, 64), []error{ErrEmptyPayload, ErrFraming}},
		{"all ones", func() bools {
			b := make(bools, 128)
			for i := range b {
				b[i] = true
			}
			return b
		}(), []error{ErrTruncatedPayload, ErrFraming}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Unframe(tt.src, Plain())
			assert.Nil(t, out)
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.True(t, errors.Is(err, want), "%v should wrap %v", err, want)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	length, err := Header(bools(headerBits(0xdeadbeef)))
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), length)
}

func TestMaxPayload(t *testing.T) {
	test := []struct {
		avail int
		want  int
	}{
		{0, 0},
		{31, 0},
		{32, 0},
		{39, 0},
		{40, 1},
		{300, 33},
		{100, 8},
	}
	for _, tt := range test {
		assert.Equal(t, tt.want, MaxPayload(tt.avail, Plain()), "avail %d", tt.avail)
	}
	for _, avail := range []int{40, 100, 300, 1000, 4096} {
		for _, c := range []Coding{Plain(), Golay()} {
			n := MaxPayload(avail, c)
			if n > 0 {
				assert.LessOrEqual(t, Len(n, c), avail)
			}
			assert.Greater(t, Len(n+1, c), avail)
		}
	}
}
