package core

import (
	"errors"
	"fmt"

	"github.com/charliebarber/sat-routing-2d/model"
)

// ZoneConstrainedPath finds the minimum-weight route from source to target
// that visits all four corners of the zone, in any order, with total
// weight >= minWeight.
//
// The search decomposes the route into five segments,
//
//	source -> c[i1] -> c[i2] -> c[i3] -> c[i4] -> target,
//
// evaluates all 24 corner orderings with shortest-path segments, and takes
// the lightest ordering that clears the floor. If none does, it relaxes to
// suboptimal segment routings: for each ordering, each segment is re-run
// with one edge of its shortest path excluded, inflating that segment past
// its optimum, and the lightest combination at or above the floor wins.
// Only when that bounded search is also empty does the call fail with
// ErrNoQualifyingPath.
//
// Enumerating orderings is tractable precisely because a zone has a fixed
// four-corner boundary; this deliberately sidesteps the general constrained
// Steiner formulation the domain does not need.
func ZoneConstrainedPath(g *Graph, source, target model.NodeID, zone *ZoneHandle, minWeight float64) (model.Path, error) {
	if zone == nil {
		return model.Path{}, fmt.Errorf("%w: nil zone", ErrInvalidZone)
	}
	corners := zone.Corners()

	segments := newSegmentCache(g)

	type ordering struct {
		perm [4]int
		legs [5]model.Path
		base float64
	}
	var orderings []ordering

	for _, perm := range cornerPermutations() {
		waypoints := []model.NodeID{
			source,
			corners[perm[0]],
			corners[perm[1]],
			corners[perm[2]],
			corners[perm[3]],
			target,
		}
		ord := ordering{perm: perm}
		feasible := true
		for i := 0; i < 5; i++ {
			leg, err := segments.shortest(waypoints[i], waypoints[i+1])
			if err != nil {
				if errors.Is(err, ErrNoPath) {
					feasible = false
					break
				}
				return model.Path{}, err
			}
			ord.legs[i] = leg
			ord.base += leg.Weight
		}
		if feasible {
			orderings = append(orderings, ord)
		}
	}
	if len(orderings) == 0 {
		return model.Path{}, fmt.Errorf("%w: zone %q unreachable from %s", ErrNoPath, zone.Name(), source)
	}

	// Pass 1: shortest segments. Orderings are enumerated in a fixed
	// lexicographic order, and only a strictly lighter qualifier displaces
	// the incumbent, so ties resolve to the earliest ordering.
	best := model.Path{}
	bestWeight := -1.0
	for _, ord := range orderings {
		if ord.base < minWeight {
			continue
		}
		if bestWeight < 0 || ord.base < bestWeight {
			best = joinLegs(ord.legs[:])
			bestWeight = ord.base
		}
	}
	if bestWeight >= 0 {
		return best, nil
	}

	// Pass 2: relax one segment per candidate to a suboptimal routing. A
	// segment is inflated by excluding one edge of its shortest path and
	// re-running the search, which forces a detour around that edge while
	// keeping the candidate set bounded.
	for _, ord := range orderings {
		for leg := 0; leg < 5; leg++ {
			nodes := ord.legs[leg].Nodes
			for k := 1; k < len(nodes); k++ {
				alt, err := segments.shortestWithout(nodes[0], nodes[len(nodes)-1], nodes[k-1], nodes[k])
				if err != nil {
					continue
				}
				total := ord.base - ord.legs[leg].Weight + alt.Weight
				if total < minWeight {
					continue
				}
				if bestWeight < 0 || total < bestWeight {
					legs := ord.legs
					legs[leg] = alt
					best = joinLegs(legs[:])
					bestWeight = total
				}
			}
		}
	}
	if bestWeight >= 0 {
		return best, nil
	}

	return model.Path{}, fmt.Errorf("%w: zone %q floor %.2f", ErrNoQualifyingPath, zone.Name(), minWeight)
}

// segmentCache memoises pairwise shortest paths for the waypoint set. The
// graph is undirected, so a segment is keyed on its normalised endpoint
// pair and reversed on the way out when needed.
type segmentCache struct {
	g     *Graph
	paths map[[2]model.NodeID]model.Path
	fails map[[2]model.NodeID]error
}

func newSegmentCache(g *Graph) *segmentCache {
	return &segmentCache{
		g:     g,
		paths: make(map[[2]model.NodeID]model.Path),
		fails: make(map[[2]model.NodeID]error),
	}
}

func (c *segmentCache) shortest(a, b model.NodeID) (model.Path, error) {
	key, flipped := segmentKey(a, b)
	if err, ok := c.fails[key]; ok {
		return model.Path{}, err
	}
	p, ok := c.paths[key]
	if !ok {
		var err error
		p, err = dijkstra(c.g, key[0], key[1], nil, nil)
		if err != nil {
			c.fails[key] = err
			return model.Path{}, err
		}
		c.paths[key] = p
	}
	if flipped {
		return reversePath(p), nil
	}
	return p, nil
}

// shortestWithout is uncached: the banned edge varies per call and the
// search space is already bounded by the four-corner limit.
func (c *segmentCache) shortestWithout(a, b, edgeA, edgeB model.NodeID) (model.Path, error) {
	return dijkstra(c.g, a, b, nil, map[edgeKey]bool{newEdgeKey(edgeA, edgeB): true})
}

func segmentKey(a, b model.NodeID) (key [2]model.NodeID, flipped bool) {
	if b.Less(a) {
		return [2]model.NodeID{b, a}, true
	}
	return [2]model.NodeID{a, b}, false
}

func reversePath(p model.Path) model.Path {
	nodes := make([]model.NodeID, len(p.Nodes))
	for i, n := range p.Nodes {
		nodes[len(p.Nodes)-1-i] = n
	}
	return model.Path{Nodes: nodes, Weight: p.Weight}
}

// joinLegs concatenates segment paths into one walk, dropping the
// duplicated junction node between consecutive legs.
func joinLegs(legs []model.Path) model.Path {
	var out model.Path
	for i, leg := range legs {
		if i == 0 {
			out.Nodes = append(out.Nodes, leg.Nodes...)
		} else {
			out.Nodes = append(out.Nodes, leg.Nodes[1:]...)
		}
		out.Weight += leg.Weight
	}
	return out
}

// cornerPermutations returns all 24 orderings of {0,1,2,3} in lexicographic
// order. The fixed order is part of the determinism contract.
func cornerPermutations() [][4]int {
	var perms [][4]int
	var build func(prefix []int, rest []int)
	build = func(prefix []int, rest []int) {
		if len(rest) == 0 {
			perms = append(perms, [4]int{prefix[0], prefix[1], prefix[2], prefix[3]})
			return
		}
		for i, v := range rest {
			next := make([]int, 0, len(rest)-1)
			next = append(next, rest[:i]...)
			next = append(next, rest[i+1:]...)
			grown := make([]int, len(prefix)+1)
			copy(grown, prefix)
			grown[len(prefix)] = v
			build(grown, next)
		}
	}
	build(nil, []int{0, 1, 2, 3})
	return perms
}
