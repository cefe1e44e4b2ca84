package model

import "testing"

func TestZoneFloor(t *testing.T) {
	absolute := Zone{Name: "abs", MinWeight: 30}
	if got := absolute.Floor(10); got != 30 {
		t.Errorf("absolute floor = %v, want 30", got)
	}

	relative := Zone{Name: "rel", MinWeight: 30, WeightFactor: 1.25}
	if got := relative.Floor(10); got != 12.5 {
		t.Errorf("relative floor = %v, want 12.5 (factor overrides min_weight)", got)
	}

	// A zero baseline with a factor collapses the floor to zero, which
	// matches a run where the regular query failed.
	if got := relative.Floor(0); got != 0 {
		t.Errorf("floor at zero baseline = %v, want 0", got)
	}
}
