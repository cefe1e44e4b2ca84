package core

import (
	"testing"

	"github.com/charliebarber/sat-routing-2d/model"
)

// Shared fixtures for the core tests. The standard test constellation uses
// the production plane size (66) so satellite positions match the grid
// rule: sat 1 sits at x=32, sat 2 at x=31, and so on down to sat 9 at
// x=24, all on plane 0 (y=0). Ground stations are parked within the
// attachment radius of sat 1 (LDN) and sat 2 (NYC).

func testConfig() *model.Config {
	return &model.Config{
		SpaceWidth:   66,
		SpaceHeight:  72,
		SatsPerPlane: 66,
		GroundStations: []model.GroundStationSpec{
			{Name: "LDN", RawID: -1, Position: model.Position{X: 32, Y: 0.2}},
			{Name: "NYC", RawID: -2, Position: model.Position{X: 31, Y: -0.2}},
		},
		AttachRadius: 0.5,
		Metric:       model.WeightSnapshot,
	}
}

func link(a, b int, length float64) LinkSpec {
	return LinkSpec{A: model.Satellite(a), B: model.Satellite(b), Length: length}
}

// snapshotFromLinks derives the node population from the link endpoints.
func snapshotFromLinks(links []LinkSpec) *Snapshot {
	snap := &Snapshot{Links: links}
	seen := make(map[model.NodeID]bool)
	for _, l := range links {
		for _, id := range []model.NodeID{l.A, l.B} {
			if !seen[id] {
				seen[id] = true
				snap.Nodes = append(snap.Nodes, id)
			}
		}
	}
	return snap
}

func mustBuild(t *testing.T, cfg *model.Config, links []LinkSpec) *Graph {
	t.Helper()
	g, err := Build(snapshotFromLinks(links), cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func pathVisitsAll(p model.Path, ids ...model.NodeID) bool {
	for _, id := range ids {
		if !p.Contains(id) {
			return false
		}
	}
	return true
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
