package selector

import "math/rand/v2"

// RandomSource supplies every random choice the selector makes. Tests inject
// a seeded source so picks are reproducible.
type RandomSource interface {
	// Pick returns an index in [0, n). n must be positive.
	Pick(n int) int
	// Sample returns min(k, n) distinct indices in [0, n).
	Sample(n, k int) []int
}

// Random is a RandomSource backed by a PCG generator.
type Random struct {
	r *rand.Rand
}

// NewRandom returns a deterministic source for the given seed.
func NewRandom(seed uint64) *Random {
	return &Random{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewEntropyRandom returns a source seeded from the runtime's entropy.
func NewEntropyRandom() *Random {
	return &Random{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (r *Random) Pick(n int) int {
	return r.r.IntN(n)
}

// Sample does a partial Fisher-Yates shuffle of 0..n-1.
func (r *Random) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + r.r.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

// pickFrom returns a uniformly random element of pool.
func pickFrom(rs RandomSource, pool []string) (string, error) {
	if len(pool) == 0 {
		return "", ErrEmptyPool
	}
	return pool[rs.Pick(len(pool))], nil
}
