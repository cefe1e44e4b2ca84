package core

import (
	"github.com/charliebarber/sat-routing-2d/model"
)

// PositionMap maps every node in a snapshot to its position in the wrapped
// space. Built once per snapshot and read-only afterwards.
type PositionMap map[model.NodeID]model.Position

// satellitePosition derives a satellite's position from its constellation
// index. Satellites are laid out in planes of satsPerPlane each: the plane
// gives the (negative) Y coordinate, the index within the plane gives X,
// rotated by half a plane so that the in-plane seam lands mid-space rather
// than at X=0.
func satellitePosition(index, satsPerPlane int) model.Position {
	plane := index / satsPerPlane
	inPlane := satsPerPlane - (index - satsPerPlane*plane)

	half := satsPerPlane / 2
	var x int
	if inPlane > half-1 {
		x = inPlane - half
	} else {
		x = inPlane + half
	}

	return model.Position{X: float64(x), Y: float64(-plane)}
}

// BuildPositionMap assigns a position to every node id: satellites via the
// plane grid rule, ground stations from their configured coordinates.
func BuildPositionMap(ids []model.NodeID, cfg *model.Config) PositionMap {
	positions := make(PositionMap, len(ids))
	for _, id := range ids {
		if id.IsGroundStation() {
			for _, gs := range cfg.GroundStations {
				if gs.Name == id.Name {
					positions[id] = gs.Position
					break
				}
			}
			continue
		}
		positions[id] = satellitePosition(id.Sat, cfg.SatsPerPlane)
	}
	return positions
}
