package stego

import (
	"fmt"

	"github.com/yyyoichi/stego_zero/internal/packer"
)

// Canvas is the pixel access the codec needs: dimensions plus read/write of
// the RGB triple at (x, y), 0 <= x < Width(), 0 <= y < Height().
type Canvas = packer.Canvas

type (
	// Plane is the bit position (0-7) of a channel that carries data.
	Plane = packer.Plane
	// Channels is the number of channels per pixel that carry data.
	Channels = packer.Channels
)

const (
	PlaneLSB = packer.LSB
	PlaneMSB = packer.MSB

	RedOnly = packer.RedOnly
	AllRGB  = packer.AllRGB
)

// Scheme is the confidentiality scheme. Exactly one is active per Stego.
type Scheme int

const (
	// XOR encrypts the message with the key repeated over its length. It hides
	// the text from casual inspection only; reusing a key leaks structure.
	XOR Scheme = iota
	// Permute scatters the stream over slots in a key-seeded order.
	Permute
	// Marker stores the message in clear followed by the key, and checks
	// for the key on extraction.
	Marker
)

func (s Scheme) String() string {
	switch s {
	case XOR:
		return "xor"
	case Permute:
		return "permute"
	case Marker:
		return "marker"
	}
	return fmt.Sprintf("scheme(%d)", int(s))
}

// Traversal is the order in which stream bits visit slots.
type Traversal int

const (
	traversalAuto Traversal = iota
	// Raster visits pixels row by row, R then G then B.
	Raster
	// Permuted visits slots in the key-seeded order of the Permute scheme.
	Permuted
)

func (t Traversal) String() string {
	switch t {
	case traversalAuto:
		return "auto"
	case Raster:
		return "raster"
	case Permuted:
		return "permuted"
	}
	return fmt.Sprintf("traversal(%d)", int(t))
}
