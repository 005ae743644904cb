package engine

import "math/rand"

// All randomized formulas draw from an injected *rand.Rand so a mission is a
// pure function of (player states, rng). Tests pass rand.New(rand.NewSource(n))
// for reproducible outcomes; the service layer seeds from the clock.

// uniform draws a float64 in [min, max).
func uniform(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// uniformInt draws an int in [min, max].
func uniformInt(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}
