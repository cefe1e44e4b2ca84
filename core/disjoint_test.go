package core

import (
	"errors"
	"testing"

	"github.com/charliebarber/sat-routing-2d/model"
)

// disjointConfig widens the attachment rule so each ground station reaches
// three satellites, leaving room for three fully disjoint routes:
// LDN attaches to sats 1,2,3 and NYC (moved next to sat 5) to sats 4,5,6.
func disjointConfig() *model.Config {
	cfg := testConfig()
	cfg.GroundStations[1].Position = model.Position{X: 28, Y: 0.2}
	cfg.AttachRadius = 2.5
	cfg.MaxAttachments = 3
	return cfg
}

func disjointLinks() []LinkSpec {
	return []LinkSpec{
		link(1, 4, 1),
		link(2, 5, 2),
		link(3, 6, 3),
	}
}

func interiorNodes(p model.Path) []model.NodeID {
	if len(p.Nodes) <= 2 {
		return nil
	}
	return p.Nodes[1 : len(p.Nodes)-1]
}

func TestDisjointShortestPaths_ThreeLanes(t *testing.T) {
	g := mustBuild(t, disjointConfig(), disjointLinks())

	paths, err := DisjointShortestPaths(g, testLDN, testNYC, 3)
	if err != nil {
		t.Fatalf("DisjointShortestPaths: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(paths))
	}

	// Successive paths are heavier: each search runs on a graph with the
	// previous interiors removed.
	for i := 1; i < len(paths); i++ {
		if paths[i].Weight <= paths[i-1].Weight {
			t.Errorf("path %d weight %v not above path %d weight %v",
				i, paths[i].Weight, i-1, paths[i-1].Weight)
		}
	}

	// Each lane runs through its own satellite pair.
	lanes := [][2]model.NodeID{
		{model.Satellite(1), model.Satellite(4)},
		{model.Satellite(2), model.Satellite(5)},
		{model.Satellite(3), model.Satellite(6)},
	}
	for i, lane := range lanes {
		if !pathVisitsAll(paths[i], lane[0], lane[1]) {
			t.Errorf("path %d = %v, want lane through %s and %s", i, paths[i].Nodes, lane[0], lane[1])
		}
	}

	// Interiors are pairwise disjoint; only the ground stations repeat.
	seen := make(map[model.NodeID]int)
	for i, p := range paths {
		for _, n := range interiorNodes(p) {
			if prev, ok := seen[n]; ok {
				t.Errorf("node %s appears in paths %d and %d", n, prev, i)
			}
			seen[n] = i
		}
	}
}

func TestDisjointShortestPaths_StopsWhenCapacityRunsOut(t *testing.T) {
	g := mustBuild(t, disjointConfig(), disjointLinks())

	// Asking for more lanes than exist is not an error.
	paths, err := DisjointShortestPaths(g, testLDN, testNYC, 5)
	if err != nil {
		t.Fatalf("DisjointShortestPaths: %v", err)
	}
	if len(paths) != 3 {
		t.Errorf("got %d paths, want the 3 the graph supports", len(paths))
	}
}

func TestDisjointShortestPaths_DefaultsToSingle(t *testing.T) {
	g := mustBuild(t, disjointConfig(), disjointLinks())

	paths, err := DisjointShortestPaths(g, testLDN, testNYC, 0)
	if err != nil {
		t.Fatalf("DisjointShortestPaths: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}

	direct, err := ShortestPath(g, testLDN, testNYC)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if paths[0].Weight != direct.Weight {
		t.Errorf("first disjoint path weight %v != shortest path weight %v", paths[0].Weight, direct.Weight)
	}
}

func TestDisjointShortestPaths_FirstSearchFails(t *testing.T) {
	g := mustBuild(t, testConfig(), []LinkSpec{
		link(1, 3, 1),
		link(2, 6, 1),
	})

	_, err := DisjointShortestPaths(g, testLDN, testNYC, 3)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("err = %v, want ErrNoPath", err)
	}
}
