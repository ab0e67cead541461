package prng

import "unicode/utf16"

// Source is a deterministic xorshift32 stream seeded from a string. The same
// seed always yields the same sequence, which is what lets a daily batch be
// regenerated bit-for-bit from its request parameters. Not suitable for
// anything security-sensitive.
type Source struct {
	state uint32
}

// New folds the seed string into a 32-bit state. Each UTF-16 code unit is
// XORed in, shifted left by its index modulo 8. An empty seed leaves the
// state at zero; the stream is still valid, just low-entropy.
func New(seed string) *Source {
	var x uint32
	for i, cu := range utf16.Encode([]rune(seed)) {
		x ^= uint32(cu) << (uint(i) % 8)
	}
	return &Source{state: x}
}

// Float64 advances the xorshift state and returns a value in [0, 1).
func (s *Source) Float64() float64 {
	s.state ^= s.state << 13
	s.state ^= s.state >> 17
	s.state ^= s.state << 5
	return float64(s.state) / 4294967296
}

// PickN draws min(n, len(items)) distinct items without replacement, in draw
// order. Each draw removes the chosen element and shifts the rest down, so
// the index stream alone determines the result. Reproducibility is the point
// here, not uniformity.
func PickN[T any](items []T, n int, rnd *Source) []T {
	working := append([]T(nil), items...)
	if n > len(working) {
		n = len(working)
	}
	out := make([]T, 0, max(n, 0))
	for i := 0; i < n; i++ {
		idx := int(rnd.Float64() * float64(len(working)))
		out = append(out, working[idx])
		working = append(working[:idx], working[idx+1:]...)
	}
	return out
}
