package stego

import (
	"errors"
	"fmt"

	"github.com/yyyoichi/stego_zero/internal/frame"
	"github.com/yyyoichi/stego_zero/internal/packer"
	"github.com/yyyoichi/stego_zero/internal/secret"
)

var (
	// ErrEmptyKey is returned for a nil or empty key.
	ErrEmptyKey = secret.ErrEmptyKey
	// ErrEmptyMessage is returned by Embed for a nil or empty message.
	ErrEmptyMessage = errors.New("message must not be empty")
	// ErrCapacity is wrapped by every *CapacityError.
	ErrCapacity = packer.ErrCapacity
	// ErrFraming marks a length header or payload that cannot be decoded.
	ErrFraming = frame.ErrFraming
	// ErrTruncatedHeader means the carrier holds fewer than 32 bits.
	ErrTruncatedHeader = frame.ErrTruncatedHeader
	// ErrTruncatedPayload means the header declares more bits than remain.
	ErrTruncatedPayload = frame.ErrTruncatedPayload
	// ErrKeyMismatch means the key does not open the hidden message.
	ErrKeyMismatch = errors.New("wrong key or corrupted data")
	// ErrInvalidOption is returned by New for an unusable configuration.
	ErrInvalidOption = errors.New("invalid option")
)

// CapacityError reports a message that does not fit the carrier.
// errors.Is(err, ErrCapacity) holds for it.
type CapacityError struct {
	// Need and Available are in bits.
	Need, Available int
	// MaxPayload is the largest message, in bytes, the carrier accepts
	// with the same configuration and key.
	MaxPayload int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: need %d bits, have %d (max payload %d bytes)", ErrCapacity, e.Need, e.Available, e.MaxPayload)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacity
}
