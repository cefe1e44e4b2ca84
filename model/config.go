package model

// GroundStationSpec describes one fixed terrestrial endpoint: the name used
// in NodeIDs, the negative integer the snapshot grammar encodes it as, and
// its position in the wrapped space.
type GroundStationSpec struct {
	Name     string
	RawID    int
	Position Position
}

// RegionBounds is an optional region-of-interest filter. Satellites whose
// positions fall outside the bounds are dropped before graph construction;
// ground stations always survive the filter.
type RegionBounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// WeightMetric selects how edge weights are derived.
type WeightMetric string

const (
	// WeightWrapped computes weights from wrapped Euclidean distance
	// between endpoint positions. Default.
	WeightWrapped WeightMetric = "wrapped"
	// WeightSnapshot trusts the length field declared on each snapshot
	// link record.
	WeightSnapshot WeightMetric = "snapshot"
)

// Config is the immutable per-run configuration consumed by the graph
// builder, zone registry, and routing service. There is no ambient global
// state: every component receives the Config (or the slice of it that it
// needs) at construction.
type Config struct {
	// Wrapped space dimensions. Width is typically the number of satellites
	// per plane, Height the number of planes.
	SpaceWidth  float64
	SpaceHeight float64

	// SatsPerPlane drives the positional grid rule that derives a
	// satellite's position from its index.
	SatsPerPlane int

	GroundStations []GroundStationSpec

	// AttachRadius bounds the ground-station attachment rule: a station
	// connects to its nearest satellites within this wrapped distance.
	AttachRadius float64
	// MaxAttachments caps how many satellites a station attaches to.
	// Zero means one.
	MaxAttachments int

	Zones []Zone

	Metric WeightMetric

	// Bounds, when non-nil, restricts the graph to a region of interest.
	Bounds *RegionBounds

	// DisjointPaths is how many successively node-disjoint alternatives the
	// routing service computes for the regular query. Zero means one.
	DisjointPaths int
}

// GroundStationByRawID resolves a snapshot's negative node id to its
// configured spec, or nil if the id is not a known ground station.
func (c *Config) GroundStationByRawID(raw int) *GroundStationSpec {
	for i := range c.GroundStations {
		if c.GroundStations[i].RawID == raw {
			return &c.GroundStations[i]
		}
	}
	return nil
}
