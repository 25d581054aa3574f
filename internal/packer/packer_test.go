package packer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type grid struct {
	w, h int
	pix  [][3]uint8
}

func newGrid(w, h int, fill func(x, y int) [3]uint8) *grid {
	g := &grid{w: w, h: h, pix: make([][3]uint8, w*h)}
	for y := range h {
		for x := range w {
			g.pix[y*w+x] = fill(x, y)
		}
	}
	return g
}

func (g *grid) Width() int                    { return g.w }
func (g *grid) Height() int                   { return g.h }
func (g *grid) RGB(x, y int) [3]uint8         { return g.pix[y*g.w+x] }
func (g *grid) SetRGB(x, y int, rgb [3]uint8) { g.pix[y*g.w+x] = rgb }

func (g *grid) clone() *grid {
	c := *g
	c.pix = append([][3]uint8(nil), g.pix...)
	return &c
}

type bools []bool

func (b bools) Bits() int         { return len(b) }
func (b bools) BitAt(at int) bool { return b[at] }

type reversed int

func (r reversed) Slot(i int) int { return int(r) - 1 - i }

func gradient(x, y int) [3]uint8 {
	return [3]uint8{uint8(x * 25), uint8(y * 25), uint8((x + y) * 12)}
}

func TestLayout(t *testing.T) {
	test := []struct {
		layout Layout
		w, h   int
		want   int
	}{
		{Layout{LSB, AllRGB}, 10, 10, 300},
		{Layout{MSB, RedOnly}, 10, 10, 100},
		{Layout{LSB, AllRGB}, 0, 10, 0},
		{Layout{LSB, RedOnly}, 3, 4, 12},
	}
	for _, tt := range test {
		assert.Equal(t, tt.want, tt.layout.Capacity(tt.w, tt.h))
	}

	assert.NoError(t, Layout{MSB, AllRGB}.Validate())
	assert.Error(t, Layout{Plane(8), AllRGB}.Validate())
	assert.Error(t, Layout{LSB, Channels(2)}.Validate())

	assert.NoError(t, Enable(10, 10, Layout{LSB, AllRGB}, 300))
	assert.True(t, errors.Is(Enable(10, 10, Layout{LSB, AllRGB}, 301), ErrCapacity))
}

func TestPacker(t *testing.T) {
	t.Run("raster placement", func(t *testing.T) {
		g := newGrid(2, 2, func(x, y int) [3]uint8 { return [3]uint8{} })
		p := New(g, Layout{MSB, AllRGB}, nil)
		require.NoError(t, p.Write(bools{true, false, true, true}))
		assert.Equal(t, [3]uint8{0x80, 0x00, 0x80}, g.RGB(0, 0))
		assert.Equal(t, [3]uint8{0x80, 0x00, 0x00}, g.RGB(1, 0))
		assert.Equal(t, [3]uint8{}, g.RGB(0, 1))
	})

	t.Run("red only", func(t *testing.T) {
		g := newGrid(3, 1, func(x, y int) [3]uint8 { return [3]uint8{0xff, 0xff, 0xff} })
		p := New(g, Layout{LSB, RedOnly}, nil)
		require.Equal(t, 3, p.Bits())
		require.NoError(t, p.Write(bools{false, true, false}))
		assert.Equal(t, [3]uint8{0xfe, 0xff, 0xff}, g.RGB(0, 0))
		assert.Equal(t, [3]uint8{0xff, 0xff, 0xff}, g.RGB(1, 0))
		assert.Equal(t, [3]uint8{0xfe, 0xff, 0xff}, g.RGB(2, 0))
	})

	t.Run("round trip touches one bit per slot", func(t *testing.T) {
		for _, layout := range []Layout{
			{LSB, AllRGB}, {MSB, AllRGB}, {LSB, RedOnly}, {MSB, RedOnly}, {Plane(3), AllRGB},
		} {
			for _, order := range []Order{nil, reversed(layout.Capacity(5, 4))} {
				g := newGrid(5, 4, gradient)
				orig := g.clone()
				p := New(g, layout, order)
				bits := make(bools, p.Bits()-7)
				for i := range bits {
					bits[i] = i%3 == 0 || i%5 == 1
				}
				require.NoError(t, p.Write(bits))
				for i := range bits {
					assert.Equal(t, bits[i], p.BitAt(i))
				}
				mask := uint8(1) << uint8(layout.Plane)
				for i := range g.pix {
					for ch := range 3 {
						assert.Equal(t, orig.pix[i][ch]&^mask, g.pix[i][ch]&^mask)
						if ch >= int(layout.Channels) {
							assert.Equal(t, orig.pix[i][ch], g.pix[i][ch])
						}
					}
				}
			}
		}
	})

	t.Run("pixels past the stream are untouched", func(t *testing.T) {
		g := newGrid(10, 10, gradient)
		orig := g.clone()
		p := New(g, Layout{LSB, AllRGB}, nil)
		bits := make(bools, 48)
		for i := range bits {
			bits[i] = true
		}
		require.NoError(t, p.Write(bits))
		assert.Equal(t, orig.pix[16:], g.pix[16:])
	})

	t.Run("over capacity writes nothing", func(t *testing.T) {
		g := newGrid(2, 2, gradient)
		orig := g.clone()
		p := New(g, Layout{LSB, AllRGB}, nil)
		err := p.Write(make(bools, 13))
		assert.True(t, errors.Is(err, ErrCapacity))
		assert.Equal(t, orig.pix, g.pix)
	})
}
