package core

import (
	"container/heap"
	"fmt"

	"github.com/charliebarber/sat-routing-2d/model"
)

// The path finder is stateless: every operation is a pure function of the
// immutable graph and its arguments, so concurrent queries need no
// coordination beyond sharing the graph read-only.

// ShortestPath runs Dijkstra from source to target over non-negative edge
// weights. Among equal-weight paths it returns the one discovered first
// under ascending-weight, then ascending-node-id expansion order, so
// repeated calls with identical input yield an identical Path.
func ShortestPath(g *Graph, source, target model.NodeID) (model.Path, error) {
	return dijkstra(g, source, target, nil, nil)
}

// edgeKey identifies an undirected edge by its normalised endpoint pair.
type edgeKey [2]model.NodeID

func newEdgeKey(a, b model.NodeID) edgeKey {
	if b.Less(a) {
		return edgeKey{b, a}
	}
	return edgeKey{a, b}
}

// dijkstra is ShortestPath with optional exclusions: banned nodes (used by
// the disjoint-path search) and banned edges (used by the zone search's
// floor relaxation). Excluding the source or target makes the target
// unreachable by definition.
func dijkstra(g *Graph, source, target model.NodeID, excluded map[model.NodeID]bool, excludedEdges map[edgeKey]bool) (model.Path, error) {
	if !g.HasNode(source) {
		return model.Path{}, fmt.Errorf("%w: unknown source %s", ErrNoPath, source)
	}
	if !g.HasNode(target) {
		return model.Path{}, fmt.Errorf("%w: unknown target %s", ErrNoPath, target)
	}
	if excluded[source] || excluded[target] {
		return model.Path{}, fmt.Errorf("%w: %s -> %s", ErrNoPath, source, target)
	}
	if source == target {
		return model.Path{Nodes: []model.NodeID{source}}, nil
	}

	dist := map[model.NodeID]float64{source: 0}
	prev := map[model.NodeID]model.NodeID{}
	done := map[model.NodeID]bool{}

	pq := &nodeQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{node: source, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		u := item.node
		if done[u] {
			continue
		}
		done[u] = true

		if u == target {
			return assemblePath(target, source, prev, dist[target]), nil
		}

		for _, e := range g.Neighbors(u) {
			v := e.To
			if done[v] || excluded[v] {
				continue
			}
			if excludedEdges != nil && excludedEdges[newEdgeKey(u, v)] {
				continue
			}
			alt := dist[u] + e.Weight
			// Strictly-less keeps the first-discovered predecessor on
			// weight ties, which is what makes the result deterministic.
			if old, seen := dist[v]; !seen || alt < old {
				dist[v] = alt
				prev[v] = u
				heap.Push(pq, &pqItem{node: v, dist: alt})
			}
		}
	}

	return model.Path{}, fmt.Errorf("%w: %s -> %s", ErrNoPath, source, target)
}

func assemblePath(target, source model.NodeID, prev map[model.NodeID]model.NodeID, weight float64) model.Path {
	var reversed []model.NodeID
	for at := target; ; at = prev[at] {
		reversed = append(reversed, at)
		if at == source {
			break
		}
	}
	nodes := make([]model.NodeID, len(reversed))
	for i, n := range reversed {
		nodes[len(reversed)-1-i] = n
	}
	return model.Path{Nodes: nodes, Weight: weight}
}

// pqItem / nodeQueue implement the Dijkstra frontier. Ordering is by
// tentative distance, then node order, so the expansion sequence is fully
// determined by the input graph.
type pqItem struct {
	node model.NodeID
	dist float64
}

type nodeQueue []*pqItem

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node.Less(q[j].node)
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(*pqItem)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
