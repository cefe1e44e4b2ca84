package core

import (
	"fmt"
	"sort"

	"github.com/charliebarber/sat-routing-2d/model"
)

// Edge is one weighted half-edge in a node's adjacency list.
type Edge struct {
	To     model.NodeID
	Weight float64
}

// Graph is the weighted snapshot graph the path finder runs on. It is
// built once per snapshot by Build and read-only afterwards: concurrent
// queries share it without locks, and any update means rebuilding from a
// new snapshot, never editing in place.
//
// Invariants: the graph is simple (no self-loops, no duplicate edges),
// every edge endpoint is in the node set, and all weights are >= 0.
type Graph struct {
	space     WrappedSpace
	positions PositionMap
	nodes     []model.NodeID
	adjacency map[model.NodeID][]Edge
	edgeCount int
}

// Space returns the wrapped space the graph was built in.
func (g *Graph) Space() WrappedSpace { return g.space }

// Nodes returns all node ids in deterministic order (ground stations
// first, then satellites ascending). Callers must not mutate the slice.
func (g *Graph) Nodes() []model.NodeID { return g.nodes }

// HasNode reports whether id is part of the graph.
func (g *Graph) HasNode(id model.NodeID) bool {
	_, ok := g.positions[id]
	return ok
}

// Position returns a node's position in the wrapped space.
func (g *Graph) Position(id model.NodeID) (model.Position, bool) {
	pos, ok := g.positions[id]
	return pos, ok
}

// Neighbors returns id's adjacency list, sorted by node order. Callers
// must not mutate the slice.
func (g *Graph) Neighbors(id model.NodeID) []Edge {
	return g.adjacency[id]
}

// EdgeWeight returns the weight of the edge between a and b, if one exists.
func (g *Graph) EdgeWeight(a, b model.NodeID) (float64, bool) {
	for _, e := range g.adjacency[a] {
		if e.To == b {
			return e.Weight, true
		}
	}
	return 0, false
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// PathWeight sums the edge weights along an ordered node sequence. It
// returns false if any consecutive pair is not joined by an edge.
func (g *Graph) PathWeight(nodes []model.NodeID) (float64, bool) {
	total := 0.0
	for i := 1; i < len(nodes); i++ {
		w, ok := g.EdgeWeight(nodes[i-1], nodes[i])
		if !ok {
			return 0, false
		}
		total += w
	}
	return total, true
}

// Build assembles the snapshot graph: one node per surviving position,
// satellite links from the adjacency spec weighted by the configured
// metric, and each ground station attached to its nearest satellites
// within the attachment radius.
//
// Ground stations are connected by this construction rule only; raw
// adjacency records touching a ground station are ignored, so a capture
// cannot smuggle in endpoint links the rule would not grant.
func Build(snap *Snapshot, cfg *model.Config) (*Graph, error) {
	if snap == nil {
		return nil, fmt.Errorf("Build: snapshot is nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("Build: config is nil")
	}

	space := NewWrappedSpace(cfg)
	positions := BuildPositionMap(snap.Nodes, cfg)

	// Ground stations are nodes even when the capture never mentioned
	// them; their positions come from config.
	for _, gs := range cfg.GroundStations {
		positions[model.GroundStation(gs.Name)] = gs.Position
	}

	// Region-of-interest filter. Satellites outside the bounds are dropped;
	// ground stations always survive.
	if b := cfg.Bounds; b != nil {
		for id, pos := range positions {
			if id.IsGroundStation() {
				continue
			}
			if pos.X < b.XMin || pos.X > b.XMax || pos.Y < b.YMin || pos.Y > b.YMax {
				delete(positions, id)
			}
		}
	}

	g := &Graph{
		space:     space,
		positions: positions,
		adjacency: make(map[model.NodeID][]Edge, len(positions)),
	}

	// Satellite-satellite edges from the adjacency spec.
	for _, link := range snap.Links {
		if link.A.IsGroundStation() || link.B.IsGroundStation() {
			continue
		}
		if link.A == link.B {
			continue
		}
		if !g.HasNode(link.A) || !g.HasNode(link.B) {
			continue
		}
		weight := link.Length
		if cfg.Metric != model.WeightSnapshot {
			weight = space.Distance(positions[link.A], positions[link.B])
		}
		g.addEdge(link.A, link.B, weight)
	}

	// Ground-station attachment rule: nearest satellites within radius.
	maxAttach := cfg.MaxAttachments
	if maxAttach <= 0 {
		maxAttach = 1
	}
	for _, gs := range cfg.GroundStations {
		gsID := model.GroundStation(gs.Name)
		candidates := attachmentCandidates(g, gsID, cfg.AttachRadius)
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: %q (radius %.2f)", ErrDisconnectedGroundStation, gs.Name, cfg.AttachRadius)
		}
		if len(candidates) > maxAttach {
			candidates = candidates[:maxAttach]
		}
		for _, c := range candidates {
			g.addEdge(gsID, c.To, c.Weight)
		}
	}

	// Sort node list and adjacency lists so iteration order never depends
	// on map traversal.
	for id := range positions {
		g.nodes = append(g.nodes, id)
	}
	sort.Slice(g.nodes, func(i, j int) bool { return g.nodes[i].Less(g.nodes[j]) })
	for _, edges := range g.adjacency {
		sort.Slice(edges, func(i, j int) bool { return edges[i].To.Less(edges[j].To) })
	}

	return g, nil
}

// addEdge inserts an undirected edge, keeping the graph simple: a
// duplicate pair keeps its first weight.
func (g *Graph) addEdge(a, b model.NodeID, weight float64) {
	if _, exists := g.EdgeWeight(a, b); exists {
		return
	}
	g.adjacency[a] = append(g.adjacency[a], Edge{To: b, Weight: weight})
	g.adjacency[b] = append(g.adjacency[b], Edge{To: a, Weight: weight})
	g.edgeCount++
}

// attachmentCandidates lists satellites within radius of the station,
// nearest first; ties broken by node order so attachment is deterministic.
func attachmentCandidates(g *Graph, gsID model.NodeID, radius float64) []Edge {
	gsPos := g.positions[gsID]
	var out []Edge
	for id, pos := range g.positions {
		if id.IsGroundStation() {
			continue
		}
		d := g.space.Distance(gsPos, pos)
		if radius > 0 && d > radius {
			continue
		}
		out = append(out, Edge{To: id, Weight: d})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight < out[j].Weight
		}
		return out[i].To.Less(out[j].To)
	})
	return out
}
