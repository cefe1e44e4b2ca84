package core

import (
	"errors"

	"github.com/charliebarber/sat-routing-2d/model"
)

// DisjointShortestPaths returns up to k successively node-disjoint
// shortest paths between source and target: after each path is found, its
// interior nodes are excluded from the next search, so later paths share
// only the two ground stations with earlier ones.
//
// Fewer than k paths is not an error; the graph simply ran out of disjoint
// capacity. An empty result only occurs when even the first search fails,
// in which case the ErrNoPath from that search is returned.
func DisjointShortestPaths(g *Graph, source, target model.NodeID, k int) ([]model.Path, error) {
	if k <= 0 {
		k = 1
	}

	excluded := make(map[model.NodeID]bool)
	var paths []model.Path

	for i := 0; i < k; i++ {
		p, err := dijkstra(g, source, target, excluded, nil)
		if err != nil {
			if errors.Is(err, ErrNoPath) && len(paths) > 0 {
				break
			}
			return nil, err
		}
		paths = append(paths, p)

		if len(p.Nodes) > 2 {
			for _, n := range p.Nodes[1 : len(p.Nodes)-1] {
				excluded[n] = true
			}
		}
	}

	return paths, nil
}
