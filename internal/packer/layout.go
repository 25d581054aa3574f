package packer

import (
	"fmt"
	"image"
)

// Plane is the bit position inside an 8 bit channel that carries data.
type Plane uint8

const (
	LSB Plane = 0
	MSB Plane = 7
)

func (p Plane) mask() uint8 { return 1 << uint8(p) }

func (p Plane) String() string {
	switch p {
	case LSB:
		return "lsb"
	case MSB:
		return "msb"
	}
	return fmt.Sprintf("bit%d", uint8(p))
}

// Channels is the number of channels per pixel that carry data, starting
// from red.
type Channels int

const (
	RedOnly Channels = 1
	AllRGB  Channels = 3
)

func (c Channels) String() string {
	switch c {
	case RedOnly:
		return "red"
	case AllRGB:
		return "rgb"
	}
	return fmt.Sprintf("channels(%d)", int(c))
}

// Layout fixes where carried bits live. Embed and extract must agree on it.
type Layout struct {
	Plane    Plane
	Channels Channels
}

func (l Layout) Validate() error {
	if l.Plane > MSB {
		return fmt.Errorf("bit plane %d out of range 0-7", l.Plane)
	}
	if l.Channels != RedOnly && l.Channels != AllRGB {
		return fmt.Errorf("unsupported channel count %d", l.Channels)
	}
	return nil
}

// Capacity returns the number of bit slots a width x height carrier offers.
func (l Layout) Capacity(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return width * height * int(l.Channels)
}

// CapacityOf is Capacity for an image rectangle.
func (l Layout) CapacityOf(rect image.Rectangle) int {
	return l.Capacity(rect.Dx(), rect.Dy())
}

// Enable returns ErrCapacity when a stream of the given length does not fit
// a width x height carrier.
func Enable(width, height int, l Layout, bits int) error {
	if total := l.Capacity(width, height); total < bits {
		return fmt.Errorf("%w: total slots %d < stream length %d", ErrCapacity, total, bits)
	}
	return nil
}
