package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charliebarber/sat-routing-2d/model"
)

// ZoneHandle is a zone that passed registration against the current graph:
// all four corners exist, and the rectangle they span has been resolved in
// the wrapped space.
type ZoneHandle struct {
	Zone model.Zone

	// Resolved rectangle. xLo..xHi is the corner-to-corner X range; when
	// wrapsX is set the range crosses the space boundary and membership is
	// (x >= xLo || x <= xHi) instead of a plain interval test.
	xLo, xHi   float64
	yLo, yHi   float64
	wrapsX     bool
	cornerSet  map[model.NodeID]bool
}

// Name returns the zone's configured name.
func (h *ZoneHandle) Name() string { return h.Zone.Name }

// Corners returns the four corner ids in configured order
// (top-left, top-right, bottom-left, bottom-right).
func (h *ZoneHandle) Corners() [4]model.NodeID { return h.Zone.Corners }

// contains reports whether a position falls inside the zone rectangle,
// honouring X wrap-around.
func (h *ZoneHandle) contains(pos model.Position) bool {
	if pos.Y < h.yLo || pos.Y > h.yHi {
		return false
	}
	if h.wrapsX {
		return pos.X >= h.xLo || pos.X <= h.xHi
	}
	return pos.X >= h.xLo && pos.X <= h.xHi
}

// ZoneRegistry holds the spare-capacity zones registered for one snapshot
// and answers membership and boundary queries against the graph the zones
// were validated on.
//
// The registry is concurrency-safe via an internal RWMutex so concurrent
// queries can consult it while zones are still being registered, as long
// as all access goes through these methods.
type ZoneRegistry struct {
	mu    sync.RWMutex
	graph *Graph
	zones map[string]*ZoneHandle
	order []string
}

// NewZoneRegistry creates an empty registry bound to a built graph.
func NewZoneRegistry(g *Graph) *ZoneRegistry {
	return &ZoneRegistry{
		graph: g,
		zones: make(map[string]*ZoneHandle),
	}
}

// Register validates a zone against the graph and stores it. A zone whose
// corners are not all present fails with ErrInvalidZone and stays inactive
// for this snapshot; the caller is expected to skip it and continue.
func (r *ZoneRegistry) Register(z model.Zone) (*ZoneHandle, error) {
	if z.Name == "" {
		return nil, fmt.Errorf("%w: zone has no name", ErrInvalidZone)
	}

	cornerSet := make(map[model.NodeID]bool, 4)
	for _, c := range z.Corners {
		if !r.graph.HasNode(c) {
			return nil, fmt.Errorf("%w: zone %q corner %s", ErrInvalidZone, z.Name, c)
		}
		if cornerSet[c] {
			return nil, fmt.Errorf("%w: zone %q repeats corner %s", ErrInvalidZone, z.Name, c)
		}
		cornerSet[c] = true
	}

	tl, _ := r.graph.Position(z.Corners[0])
	tr, _ := r.graph.Position(z.Corners[1])
	bl, _ := r.graph.Position(z.Corners[2])

	h := &ZoneHandle{
		Zone:      z,
		xLo:       tl.X,
		xHi:       tr.X,
		yLo:       min2(tl.Y, bl.Y),
		yHi:       max2(tl.Y, bl.Y),
		wrapsX:    tl.X > tr.X,
		cornerSet: cornerSet,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.zones[z.Name]; exists {
		return nil, fmt.Errorf("%w: zone %q already registered", ErrInvalidZone, z.Name)
	}
	r.zones[z.Name] = h
	r.order = append(r.order, z.Name)
	return h, nil
}

// Zones returns all registered zones in registration order.
func (r *ZoneRegistry) Zones() []*ZoneHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*ZoneHandle, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.zones[name])
	}
	return out
}

// IsBoundaryNode reports whether id is one of the zone's four corners. The
// boundary set is exactly the corners: spare-capacity access is only
// guaranteed at designated junctions, so constrained routing targets the
// corners, not the interior.
func (r *ZoneRegistry) IsBoundaryNode(id model.NodeID, zoneName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.zones[zoneName]
	if !ok {
		return false
	}
	return h.cornerSet[id]
}

// ZonesContaining returns the zones whose rectangle contains the node, in
// registration order. Ground stations are never inside a zone.
func (r *ZoneRegistry) ZonesContaining(id model.NodeID) []*ZoneHandle {
	if id.IsGroundStation() {
		return nil
	}
	pos, ok := r.graph.Position(id)
	if !ok {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*ZoneHandle
	for _, name := range r.order {
		if h := r.zones[name]; h.contains(pos) {
			out = append(out, h)
		}
	}
	return out
}

// NodesInZone lists the satellites inside the zone rectangle in node
// order. Interior membership is reporting-only; routing constraints bind
// to the corners.
func (r *ZoneRegistry) NodesInZone(zoneName string) []model.NodeID {
	r.mu.RLock()
	h, ok := r.zones[zoneName]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	var out []model.NodeID
	for _, id := range r.graph.Nodes() {
		if id.IsGroundStation() {
			continue
		}
		pos, _ := r.graph.Position(id)
		if h.contains(pos) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
