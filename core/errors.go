package core

import "errors"

// Error taxonomy for a routing run. Structural failures
// (ErrDisconnectedGroundStation) abort the run, because no query can
// succeed without both endpoints in the graph. Everything else is scoped:
// an invalid zone is skipped, a failed query is reported next to the
// queries that succeeded.
var (
	// ErrDisconnectedGroundStation: a ground station has no attachment
	// candidate within the configured radius. Fatal.
	ErrDisconnectedGroundStation = errors.New("ground station has no attachment candidate")

	// ErrInvalidZone: a zone names a corner that is not present in the
	// current graph. The zone is inactive for this snapshot.
	ErrInvalidZone = errors.New("zone corner missing from graph")

	// ErrNoPath: no route exists between source and target.
	ErrNoPath = errors.New("no path between nodes")

	// ErrNoQualifyingPath: no corner ordering produces a constrained route
	// meeting the weight floor, even after relaxing to suboptimal segment
	// routings.
	ErrNoQualifyingPath = errors.New("no zone route satisfies the weight floor")
)
