package secret

import (
	"crypto/hkdf"
	"crypto/sha256"
)

const (
	permutationInfo = "stego_zero-permutation-seed-v1"
	seedLen         = 32
)

type seedGen interface {
	Generate(key []byte) ([seedLen]byte, error)
}

var _ seedGen = (*hkdfSeedGen)(nil)

type hkdfSeedGen struct {
	salt []byte
	info string
}

func newPermutationSeedGen() *hkdfSeedGen {
	return &hkdfSeedGen{info: permutationInfo}
}

// Generate derives a 256 bit seed from key.
func (g *hkdfSeedGen) Generate(key []byte) (seed [seedLen]byte, err error) {
	b, err := hkdf.Key(sha256.New, key, g.salt, g.info, seedLen)
	if err != nil {
		return seed, err
	}
	copy(seed[:], b)
	return seed, nil
}
