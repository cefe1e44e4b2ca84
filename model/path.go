package model

import "strings"

// Path is an ordered walk through the graph, produced by the path finder
// and never mutated afterwards. Nodes[0] is the source ground station,
// Nodes[len-1] the target; consecutive entries are joined by an edge.
type Path struct {
	Nodes  []NodeID
	Weight float64
}

// Contains reports whether the path visits the given node.
func (p Path) Contains(id NodeID) bool {
	for _, n := range p.Nodes {
		if n == id {
			return true
		}
	}
	return false
}

// Hops returns the number of edges traversed.
func (p Path) Hops() int {
	if len(p.Nodes) == 0 {
		return 0
	}
	return len(p.Nodes) - 1
}

func (p Path) String() string {
	parts := make([]string, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		parts = append(parts, n.String())
	}
	return strings.Join(parts, " -> ")
}

// QueryKind classifies a routing query for reporting.
type QueryKind string

const (
	QueryRegular         QueryKind = "regular"
	QueryZoneConstrained QueryKind = "zone_constrained"
)

// QueryResult is the unit handed to the reporting boundary: one path (or
// one failure) per query. Per-query failures are isolated, so a result set
// can mix successes and errors.
type QueryResult struct {
	Kind QueryKind
	Zone string // zone name for zone-constrained queries, empty otherwise
	Path Path
	Err  error
}
