package patterns

import "math/rand/v2"

// Shuffle returns a Fisher-Yates permutation of 0..n-1 drawn from rng.
func Shuffle(n int, rng *rand.Rand) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// Permutation is Shuffle with a fresh generator for seed.
func Permutation(n int, seed uint64) []int {
	return Shuffle(n, NewRand(seed))
}
