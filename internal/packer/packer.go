// Package packer maps stream bit indices onto single bits of pixel channels.
package packer

import (
	"errors"
	"fmt"
)

var ErrCapacity = errors.New("stream exceeds carrier capacity")

// Canvas is a width x height grid of RGB triples.
type Canvas interface {
	Width() int
	Height() int
	RGB(x, y int) [3]uint8
	SetRGB(x, y int, rgb [3]uint8)
}

// Order maps a stream index to the slot that carries it.
type Order interface {
	Slot(i int) int
}

// Raster visits slots in row-major order: y outer, x inner, channels R,G,B.
type Raster struct{}

func (Raster) Slot(i int) int { return i }

// BitSource yields the bits to be written.
type BitSource interface {
	Bits() int
	BitAt(at int) bool
}

// Packer reads and writes carried bits of one canvas. It also acts as a
// BitSource over every slot of the canvas, in visiting order.
type Packer struct {
	canvas Canvas
	layout Layout
	order  Order
	width  int
	slots  int
}

// New returns a packer over c. A nil order means Raster.
func New(c Canvas, l Layout, o Order) *Packer {
	if o == nil {
		o = Raster{}
	}
	return &Packer{
		canvas: c,
		layout: l,
		order:  o,
		width:  c.Width(),
		slots:  l.Capacity(c.Width(), c.Height()),
	}
}

// Bits returns the number of slots.
func (p *Packer) Bits() int {
	return p.slots
}

// BitAt reads the bit carried at stream index i.
func (p *Packer) BitAt(i int) bool {
	x, y, ch := p.locate(i)
	rgb := p.canvas.RGB(x, y)
	return (rgb[ch]>>uint8(p.layout.Plane))&1 == 1
}

// Write packs every bit of src starting at stream index 0. Nothing is
// written when src does not fit.
func (p *Packer) Write(src BitSource) error {
	n := src.Bits()
	if n > p.slots {
		return fmt.Errorf("%w: need %d bits, have %d", ErrCapacity, n, p.slots)
	}
	mask := p.layout.Plane.mask()
	for i := range n {
		x, y, ch := p.locate(i)
		rgb := p.canvas.RGB(x, y)
		rgb[ch] &^= mask
		if src.BitAt(i) {
			rgb[ch] |= mask
		}
		p.canvas.SetRGB(x, y, rgb)
	}
	return nil
}

func (p *Packer) locate(i int) (x, y, ch int) {
	slot := p.order.Slot(i)
	cpp := int(p.layout.Channels)
	pixel := slot / cpp
	return pixel % p.width, pixel / p.width, slot % cpp
}
