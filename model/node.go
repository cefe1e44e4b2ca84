package model

import "fmt"

// NodeKind distinguishes the two node populations in a snapshot graph.
type NodeKind int

const (
	KindSatellite NodeKind = iota
	KindGroundStation
)

// NodeID is a tagged node identifier. Satellites carry their constellation
// index; ground stations carry a configured name (e.g. "LDN", "NYC").
// Snapshot files encode ground stations as negative integers; that mapping
// is resolved at the loader boundary so nothing downstream has to reason
// about sentinel values.
//
// NodeID is comparable and can be used as a map key.
type NodeID struct {
	Kind NodeKind
	Sat  int    // valid when Kind == KindSatellite
	Name string // valid when Kind == KindGroundStation
}

// Satellite returns the NodeID for a satellite index.
func Satellite(index int) NodeID {
	return NodeID{Kind: KindSatellite, Sat: index}
}

// GroundStation returns the NodeID for a named ground station.
func GroundStation(name string) NodeID {
	return NodeID{Kind: KindGroundStation, Name: name}
}

// IsGroundStation reports whether the node is a ground station.
func (id NodeID) IsGroundStation() bool {
	return id.Kind == KindGroundStation
}

// Less defines a total order over NodeIDs: ground stations first (by name),
// then satellites by index. Used for deterministic tie-breaks in search and
// for stable iteration order wherever map traversal would otherwise leak
// randomness into results.
func (id NodeID) Less(other NodeID) bool {
	if id.Kind != other.Kind {
		return id.Kind == KindGroundStation
	}
	if id.Kind == KindGroundStation {
		return id.Name < other.Name
	}
	return id.Sat < other.Sat
}

func (id NodeID) String() string {
	if id.Kind == KindGroundStation {
		return "gs:" + id.Name
	}
	return fmt.Sprintf("sat:%d", id.Sat)
}
