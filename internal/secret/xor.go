// Package secret holds the key-dependent transforms shared by the embed and
// extract pipelines: a repeating-key XOR stream, a key-seeded slot
// permutation, and the plaintext key marker.
package secret

import "errors"

var (
	ErrEmptyKey = errors.New("key must not be empty")
	ErrNoMarker = errors.New("key marker not found")
)

// XOR returns src XORed with key repeated over its length. Applying it twice
// with the same key restores src. Keys that are repetitions of each other
// (e.g. "ab" and "abab") produce the same stream.
func XOR(src, key []byte) []byte {
	if len(key) == 0 {
		panic(ErrEmptyKey)
	}
	dst := make([]byte, len(src))
	for i := range src {
		dst[i] = src[i] ^ key[i%len(key)]
	}
	return dst
}
