package secret

import (
	"fmt"
	"math/rand/v2"
)

// Permutation is a key-seeded pseudo-random visiting order over n slots.
//
// It is a lazily evaluated Fisher-Yates shuffle: position i is fixed at the
// i-th step, so the order of the first k positions does not depend on how
// many positions are eventually consumed. Memory grows with the consumed
// prefix, not with n.
type Permutation struct {
	n     int
	rd    *rand.Rand
	order []int
	// displaced holds slots moved by earlier swaps; missing keys map to themselves.
	displaced map[int]int
}

// NewPermutation derives the visiting order for n slots from key. Each call
// owns its generator, so concurrent permutations never share state.
func NewPermutation(key []byte, n int) (*Permutation, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	seed, err := newPermutationSeedGen().Generate(key)
	if err != nil {
		return nil, fmt.Errorf("failed to derive permutation seed: %w", err)
	}
	return &Permutation{
		n:         n,
		rd:        rand.New(rand.NewChaCha8(seed)),
		displaced: make(map[int]int),
	}, nil
}

// Slot returns the slot visited at position i (0 <= i < n).
func (p *Permutation) Slot(i int) int {
	if i < 0 || i >= p.n {
		panic(fmt.Sprintf("permutation index %d out of range [0,%d)", i, p.n))
	}
	for len(p.order) <= i {
		p.step()
	}
	return p.order[i]
}

func (p *Permutation) step() {
	i := len(p.order)
	j := i + p.rd.IntN(p.n-i)
	vi, vj := p.at(i), p.at(j)
	p.displaced[j] = vi
	delete(p.displaced, i)
	p.order = append(p.order, vj)
}

func (p *Permutation) at(k int) int {
	if v, ok := p.displaced[k]; ok {
		return v
	}
	return k
}
