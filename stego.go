// Package stego hides a byte message in the pixel bits of an RGB image and
// recovers it with a shared key.
package stego

import (
	"context"
	"errors"
	"fmt"
	"image"
	"unicode/utf8"

	"github.com/yyyoichi/stego_zero/internal/carrier"
	"github.com/yyyoichi/stego_zero/internal/frame"
	"github.com/yyyoichi/stego_zero/internal/packer"
	"github.com/yyyoichi/stego_zero/internal/secret"
)

// Embed hides msg in src with the specified options.
// This is a convenience function that creates a Stego instance and calls its Embed method.
func Embed(ctx context.Context, src image.Image, msg, key []byte, opts ...Option) (image.Image, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Embed(ctx, src, msg, key)
}

// Extract recovers a message from src with the specified options.
// This is a convenience function that creates a Stego instance and calls its Extract method.
func Extract(ctx context.Context, src image.Image, key []byte, opts ...Option) ([]byte, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Extract(ctx, src, key)
}

// Stego is an immutable codec configuration. It holds no per-call state and
// is safe for concurrent use.
type Stego struct {
	layout    packer.Layout
	scheme    Scheme
	traversal Traversal
	coding    frame.Coding
	text      bool
	inPlace   bool
}

// New initializes a codec.
// Without options it writes the most significant bit of R, G and B, encrypts
// with the XOR scheme and carries the payload without error correction.
func New(opts ...Option) (*Stego, error) {
	s := new(Stego)
	if err := s.init(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Embed hides msg in a copy of src and returns the copy; src is left
// unmodified unless WithInPlace was given.
//
// Process:
//  1. Rejects an empty key or message.
//  2. Applies the confidentiality scheme to msg.
//  3. Checks that header and payload fit the carrier.
//  4. Writes the 32 bit length header and payload bits into the selected plane.
//
// When the message does not fit, the error is a *CapacityError and no pixel
// is written.
func (s *Stego) Embed(ctx context.Context, src image.Image, msg, key []byte) (image.Image, error) {
	if s.inPlace {
		if c, ok := carrier.Adopt(src); ok {
			if err := s.EmbedCanvas(ctx, c, msg, key); err != nil {
				return nil, err
			}
			return src, nil
		}
	}
	c := carrier.New(src)
	if err := s.EmbedCanvas(ctx, c, msg, key); err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// EmbedCanvas hides msg in c in place. Either the whole stream is written or,
// on error, nothing is.
func (s *Stego) EmbedCanvas(ctx context.Context, c Canvas, msg, key []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if len(msg) == 0 {
		return ErrEmptyMessage
	}

	payload := s.seal(msg, key)
	need := frame.Len(len(payload), s.coding)
	if err := packer.Enable(c.Width(), c.Height(), s.layout, need); err != nil {
		avail := s.layout.Capacity(c.Width(), c.Height())
		return &CapacityError{
			Need:       need,
			Available:  avail,
			MaxPayload: s.maxMessage(avail, len(key)),
		}
	}
	stream, err := frame.Frame(payload, s.coding)
	if err != nil {
		return err
	}
	order, err := s.order(key, s.layout.Capacity(c.Width(), c.Height()))
	if err != nil {
		return err
	}
	return packer.New(c, s.layout, order).Write(stream)
}

// Extract recovers the message hidden in src.
//
// Process:
//  1. Reads the 32 bit length header from the selected plane.
//  2. Reads exactly the payload bits the header declares.
//  3. Reverses the confidentiality scheme.
//
// A carrier too small for a header yields ErrTruncatedHeader, a header that
// declares more than the carrier holds yields ErrTruncatedPayload. A wrong key
// yields ErrKeyMismatch where it can be detected and a different message
// otherwise; there is no integrity check.
func (s *Stego) Extract(ctx context.Context, src image.Image, key []byte) ([]byte, error) {
	return s.ExtractCanvas(ctx, carrier.View(src), key)
}

// ExtractString is Extract for text messages: the result must be valid UTF-8,
// otherwise ErrKeyMismatch is returned.
func (s *Stego) ExtractString(ctx context.Context, src image.Image, key []byte) (string, error) {
	msg, err := s.extract(ctx, carrier.View(src), key, true)
	if err != nil {
		return "", err
	}
	return string(msg), nil
}

// ExtractCanvas recovers the message hidden in c. c is only read.
func (s *Stego) ExtractCanvas(ctx context.Context, c Canvas, key []byte) ([]byte, error) {
	return s.extract(ctx, c, key, s.text)
}

// MaxPayload returns the largest message, in bytes, a carrier of the given
// bounds accepts. The key only matters for the Marker scheme.
func (s *Stego) MaxPayload(bounds image.Rectangle, key []byte) int {
	return s.maxMessage(s.layout.CapacityOf(bounds), len(key))
}

// Config describes the active configuration, mainly for logs.
func (s *Stego) Config() string {
	return fmt.Sprintf("plane=%s channels=%s scheme=%s traversal=%s ecc=%s",
		s.layout.Plane, s.layout.Channels, s.scheme, s.traversal, s.coding)
}

func (s *Stego) extract(ctx context.Context, c Canvas, key []byte, text bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	avail := s.layout.Capacity(c.Width(), c.Height())
	order, err := s.order(key, avail)
	if err != nil {
		return nil, err
	}
	payload, err := frame.Unframe(packer.New(c, s.layout, order), s.coding)
	if err != nil {
		// A permuted header read with the wrong key is noise.
		if s.scheme == Permute && !errors.Is(err, ErrTruncatedHeader) {
			return nil, fmt.Errorf("%w: %w", ErrKeyMismatch, err)
		}
		return nil, err
	}

	msg, err := s.open(payload, key)
	if err != nil {
		return nil, err
	}
	if text && !utf8.Valid(msg) {
		return nil, fmt.Errorf("%w: message is not valid UTF-8", ErrKeyMismatch)
	}
	return msg, nil
}

func (s *Stego) seal(msg, key []byte) []byte {
	switch s.scheme {
	case XOR:
		return secret.XOR(msg, key)
	case Marker:
		return secret.Seal(msg, key)
	}
	return msg
}

func (s *Stego) open(payload, key []byte) ([]byte, error) {
	switch s.scheme {
	case XOR:
		return secret.XOR(payload, key), nil
	case Marker:
		msg, err := secret.Open(payload, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrKeyMismatch, err)
		}
		if len(msg) == 0 {
			return nil, fmt.Errorf("%w: %w", ErrFraming, frame.ErrEmptyPayload)
		}
		return msg, nil
	}
	return payload, nil
}

func (s *Stego) order(key []byte, slots int) (packer.Order, error) {
	if s.traversal != Permuted {
		return packer.Raster{}, nil
	}
	return secret.NewPermutation(key, slots)
}

func (s *Stego) maxMessage(avail, keyLen int) int {
	n := frame.MaxPayload(avail, s.coding)
	if s.scheme == Marker {
		n -= keyLen
	}
	return max(n, 0)
}

func (s *Stego) init(opts ...Option) error {
	s.layout = packer.Layout{Plane: PlaneMSB, Channels: AllRGB}
	s.scheme = XOR
	s.coding = frame.Plain()
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	if err := s.layout.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}
	natural := Raster
	if s.scheme == Permute {
		natural = Permuted
	}
	switch s.traversal {
	case traversalAuto:
		s.traversal = natural
	case natural:
	default:
		return fmt.Errorf("%w: traversal %s does not match scheme %s", ErrInvalidOption, s.traversal, s.scheme)
	}
	return nil
}

// Batch runs repeated operations on a single cover image by converting it to
// an RGB canvas once.
type Batch struct {
	original *carrier.Image
}

// NewBatch creates a new Batch instance for src.
func NewBatch(src image.Image) *Batch {
	return &Batch{original: carrier.New(src)}
}

// Embed hides msg in a copy of the cached cover with specified options.
func (b *Batch) Embed(ctx context.Context, msg, key []byte, opts ...Option) (image.Image, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	img := b.original.Copy()
	if err := s.EmbedCanvas(ctx, img, msg, key); err != nil {
		return nil, err
	}
	return img.Image(), nil
}

// Extract recovers a message from the cached image with specified options.
func (b *Batch) Extract(ctx context.Context, key []byte, opts ...Option) ([]byte, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.ExtractCanvas(ctx, b.original, key)
}

// MaxPayload returns the largest message the cached image accepts with the
// specified options.
func (b *Batch) MaxPayload(key []byte, opts ...Option) (int, error) {
	s, err := New(opts...)
	if err != nil {
		return 0, err
	}
	return s.maxMessage(s.layout.Capacity(b.original.Width(), b.original.Height()), len(key)), nil
}
