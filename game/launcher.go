package game

// ReachedStartHole rolls the start-hole gate: a single draw that lands
// under p means the launched ball reached the scoring trigger. The ball
// is spent either way; this only decides whether a lottery runs.
func ReachedStartHole(p float64, rng Rand) bool {
	return rng.Float64() < p
}
