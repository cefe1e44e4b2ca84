package core

import (
	"errors"
	"testing"

	"github.com/charliebarber/sat-routing-2d/model"
)

var (
	testLDN = model.GroundStation("LDN")
	testNYC = model.GroundStation("NYC")
)

// The standard pathfinding fixture: a cheap direct link 1-2 next to a
// five-hop chain through sats 3..6.
func pathTestLinks() []LinkSpec {
	return []LinkSpec{
		link(1, 2, 4),
		link(1, 3, 1),
		link(3, 4, 1),
		link(4, 5, 1),
		link(5, 6, 1),
		link(6, 2, 1),
	}
}

func TestShortestPath_PicksCheapestRoute(t *testing.T) {
	g := mustBuild(t, testConfig(), pathTestLinks())

	p, err := ShortestPath(g, testLDN, testNYC)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}

	want := []model.NodeID{testLDN, model.Satellite(1), model.Satellite(2), testNYC}
	if len(p.Nodes) != len(want) {
		t.Fatalf("path = %v, want %v", p.Nodes, want)
	}
	for i := range want {
		if p.Nodes[i] != want[i] {
			t.Fatalf("path = %v, want %v", p.Nodes, want)
		}
	}
	if !almostEqual(p.Weight, 4.4) {
		t.Errorf("weight = %v, want 4.4", p.Weight)
	}
	if w, ok := g.PathWeight(p.Nodes); !ok || !almostEqual(w, p.Weight) {
		t.Errorf("PathWeight = %v (%v), want %v", w, ok, p.Weight)
	}
}

func TestShortestPath_TieBreaksOnNodeOrder(t *testing.T) {
	// Two equal-weight routes through sats 7 and 8. The search must settle
	// on the same one every run: the lower-ordered relay wins.
	g := mustBuild(t, testConfig(), []LinkSpec{
		link(1, 7, 1),
		link(7, 2, 1),
		link(1, 8, 1),
		link(8, 2, 1),
	})

	for i := 0; i < 20; i++ {
		p, err := ShortestPath(g, testLDN, testNYC)
		if err != nil {
			t.Fatalf("ShortestPath: %v", err)
		}
		if !p.Contains(model.Satellite(7)) || p.Contains(model.Satellite(8)) {
			t.Fatalf("run %d routed %v, want the sat:7 relay", i, p.Nodes)
		}
	}
}

func TestShortestPath_Disconnected(t *testing.T) {
	// Two islands: {LDN,1,3} and {NYC,2,6}.
	g := mustBuild(t, testConfig(), []LinkSpec{
		link(1, 3, 1),
		link(2, 6, 1),
	})

	_, err := ShortestPath(g, testLDN, testNYC)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("err = %v, want ErrNoPath", err)
	}
}

func TestShortestPath_WrappedRing(t *testing.T) {
	// Six satellites on plane 0 joined in a ring. Under the wrapped metric
	// the 5-0 closing edge costs 5 (x=28 to x=33), so the cheap side of the
	// ring runs 0-1-2-3.
	cfg := testConfig()
	cfg.Metric = model.WeightWrapped
	cfg.GroundStations[0].Position = model.Position{X: 33, Y: 0.3}
	cfg.GroundStations[1].Position = model.Position{X: 30, Y: 0.3}

	g := mustBuild(t, cfg, []LinkSpec{
		link(0, 1, 0),
		link(1, 2, 0),
		link(2, 3, 0),
		link(3, 4, 0),
		link(4, 5, 0),
		link(5, 0, 0),
	})

	p, err := ShortestPath(g, testLDN, testNYC)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	want := []model.NodeID{
		testLDN,
		model.Satellite(0),
		model.Satellite(1),
		model.Satellite(2),
		model.Satellite(3),
		testNYC,
	}
	if len(p.Nodes) != len(want) {
		t.Fatalf("path = %v, want %v", p.Nodes, want)
	}
	for i := range want {
		if p.Nodes[i] != want[i] {
			t.Fatalf("path = %v, want %v", p.Nodes, want)
		}
	}
	if !almostEqual(p.Weight, 3.6) {
		t.Errorf("weight = %v, want 3.6", p.Weight)
	}
}
