package reco

import "math/rand"

// DefaultSeed is the base seed used by the command-line driver.
const DefaultSeed int64 = 940202

// deriveSeed mixes a base seed and a stream identifier with a SplitMix64
// finalizer, so neighbouring event indices yield decorrelated seeds.
//
// Complexity: O(1).
func deriveSeed(seed int64, stream uint64) int64 {
	x := uint64(seed) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// Stream returns the deterministic RNG for event index under seed.
// The same (seed, index) always yields the same sequence.
func Stream(seed, index int64) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(seed, uint64(index))))
}
