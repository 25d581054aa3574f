package stego

import (
	"fmt"

	"github.com/yyyoichi/stego_zero/internal/frame"
)

// Option configures a Stego in New.
type Option func(*Stego) error

// WithPlane selects the carrier bit plane: PlaneMSB (bit 7) or PlaneLSB (bit 0).
// The MSB plane survives more processing but visibly alters the image; the LSB
// plane is near invisible.
func WithPlane(p Plane) Option {
	return func(s *Stego) error {
		s.layout.Plane = p
		return nil
	}
}

// WithBitPlane selects any bit position 0 (LSB) through 7 (MSB).
func WithBitPlane(n int) Option {
	return func(s *Stego) error {
		if n < 0 || n > 7 {
			return fmt.Errorf("%w: bit plane %d out of range 0-7", ErrInvalidOption, n)
		}
		s.layout.Plane = Plane(n)
		return nil
	}
}

// WithChannels selects RedOnly (1 bit per pixel) or AllRGB (3 bits per pixel).
func WithChannels(c Channels) Option {
	return func(s *Stego) error {
		s.layout.Channels = c
		return nil
	}
}

// WithScheme selects the confidentiality scheme. The last scheme option wins.
func WithScheme(scheme Scheme) Option {
	return func(s *Stego) error {
		switch scheme {
		case XOR, Permute, Marker:
		default:
			return fmt.Errorf("%w: unknown scheme %d", ErrInvalidOption, int(scheme))
		}
		s.scheme = scheme
		return nil
	}
}

// WithXOR encrypts the message with the repeating key. This is the default.
func WithXOR() Option { return WithScheme(XOR) }

// WithPermutation writes the stream in a pseudo-random slot order derived
// from the key (HKDF-SHA256 seed, ChaCha8 generator).
func WithPermutation() Option { return WithScheme(Permute) }

// WithMarker stores the key in clear after the message and verifies it on
// extraction. It provides no secrecy.
func WithMarker() Option { return WithScheme(Marker) }

// WithTraversal states the slot order explicitly. Raster goes with XOR and
// Marker, Permuted with Permute; any other pairing makes New fail.
func WithTraversal(t Traversal) Option {
	return func(s *Stego) error {
		if t != Raster && t != Permuted {
			return fmt.Errorf("%w: unknown traversal %d", ErrInvalidOption, int(t))
		}
		s.traversal = t
		return nil
	}
}

// WithGolay protects payload bits with the extended Golay(24,12) code, which
// corrects up to 3 flipped bits per 24 carried bits and halves the capacity.
// The length header is not coded.
func WithGolay() Option {
	return func(s *Stego) error {
		s.coding = frame.Golay()
		return nil
	}
}

// WithoutECC carries payload bits as they are. This is the default.
func WithoutECC() Option {
	return func(s *Stego) error {
		s.coding = frame.Plain()
		return nil
	}
}

// WithText declares messages to be UTF-8 text, so Extract rejects invalid
// UTF-8 with ErrKeyMismatch.
func WithText() Option {
	return func(s *Stego) error {
		s.text = true
		return nil
	}
}

// WithInPlace makes Embed write into src itself when it is an *image.NRGBA or
// *image.RGBA, and return it. Other image types are still copied.
func WithInPlace() Option {
	return func(s *Stego) error {
		s.inPlace = true
		return nil
	}
}
