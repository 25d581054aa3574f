package secret

import (
	"bytes"
	"fmt"
)

// Seal appends key to msg as a plaintext presence marker.
func Seal(msg, key []byte) []byte {
	out := make([]byte, 0, len(msg)+len(key))
	out = append(out, msg...)
	return append(out, key...)
}

// Open verifies that payload ends with key and strips it.
func Open(payload, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	if len(payload) < len(key) || !bytes.HasSuffix(payload, key) {
		return nil, fmt.Errorf("%w: %d byte payload", ErrNoMarker, len(payload))
	}
	return payload[:len(payload)-len(key)], nil
}
