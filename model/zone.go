package model

// Zone is a rectangular spare-capacity region identified by exactly four
// corner nodes. A constrained route must touch all four corners; interior
// nodes are reported for visualisation but impose no constraint.
type Zone struct {
	Name    string
	Corners [4]NodeID

	// MinWeight is an absolute weight floor for constrained routes through
	// this zone. WeightFactor, when > 0, overrides it with a floor relative
	// to the baseline shortest path (e.g. 1.25 = 25% above shortest).
	MinWeight    float64
	WeightFactor float64
}

// Floor resolves the effective weight floor given the baseline shortest
// path weight for the snapshot.
func (z Zone) Floor(shortestWeight float64) float64 {
	if z.WeightFactor > 0 {
		return z.WeightFactor * shortestWeight
	}
	return z.MinWeight
}
