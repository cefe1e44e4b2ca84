package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charliebarber/sat-routing-2d/model"
)

// internal JSON shapes – kept unexported so the file format can evolve
// without touching the model types.
type configJSON struct {
	Space          spaceJSON           `json:"space"`
	SatsPerPlane   int                 `json:"sats_per_plane"`
	GroundStations []groundStationJSON `json:"ground_stations"`
	AttachRadius   float64             `json:"attach_radius"`
	MaxAttachments int                 `json:"max_attachments"`
	WeightMetric   string              `json:"weight_metric"`
	Bounds         *boundsJSON         `json:"bounds"`
	DisjointPaths  int                 `json:"disjoint_paths"`
	Zones          []zoneJSON          `json:"zones"`
}

type spaceJSON struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type groundStationJSON struct {
	Name     string       `json:"name"`
	RawID    int          `json:"raw_id"`
	Position positionJSON `json:"position"`
}

type positionJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type boundsJSON struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

type zoneJSON struct {
	Name         string  `json:"name"`
	Corners      []int   `json:"corners"` // top-left, top-right, bottom-left, bottom-right
	MinWeight    float64 `json:"min_weight"`
	WeightFactor float64 `json:"weight_factor"`
}

// LoadConfig reads the routing configuration from r and validates the
// structural requirements the pipeline depends on: exactly two ground
// stations with distinct raw ids, a positive satellites-per-plane count,
// and four corners per zone. Everything else keeps its zero value and is
// defaulted downstream.
func LoadConfig(r io.Reader) (*model.Config, error) {
	var payload configJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadConfig: decode failed: %w", err)
	}

	if payload.SatsPerPlane <= 0 {
		return nil, fmt.Errorf("LoadConfig: sats_per_plane must be positive, got %d", payload.SatsPerPlane)
	}
	if len(payload.GroundStations) != 2 {
		return nil, fmt.Errorf("LoadConfig: exactly two ground stations required, got %d", len(payload.GroundStations))
	}

	cfg := &model.Config{
		SpaceWidth:     payload.Space.Width,
		SpaceHeight:    payload.Space.Height,
		SatsPerPlane:   payload.SatsPerPlane,
		AttachRadius:   payload.AttachRadius,
		MaxAttachments: payload.MaxAttachments,
		Metric:         model.WeightMetric(payload.WeightMetric),
		DisjointPaths:  payload.DisjointPaths,
	}
	if cfg.SpaceWidth <= 0 {
		// The X axis wraps at one full plane by construction.
		cfg.SpaceWidth = float64(payload.SatsPerPlane)
	}
	if cfg.Metric == "" {
		cfg.Metric = model.WeightWrapped
	}

	seenRaw := make(map[int]bool, 2)
	seenName := make(map[string]bool, 2)
	for _, gs := range payload.GroundStations {
		if gs.Name == "" {
			return nil, fmt.Errorf("LoadConfig: ground station with empty name")
		}
		if gs.RawID >= 0 {
			return nil, fmt.Errorf("LoadConfig: ground station %q raw_id must be negative, got %d", gs.Name, gs.RawID)
		}
		if seenRaw[gs.RawID] || seenName[gs.Name] {
			return nil, fmt.Errorf("LoadConfig: duplicate ground station %q (raw_id %d)", gs.Name, gs.RawID)
		}
		seenRaw[gs.RawID] = true
		seenName[gs.Name] = true
		cfg.GroundStations = append(cfg.GroundStations, model.GroundStationSpec{
			Name:     gs.Name,
			RawID:    gs.RawID,
			Position: model.Position{X: gs.Position.X, Y: gs.Position.Y},
		})
	}

	if payload.Bounds != nil {
		cfg.Bounds = &model.RegionBounds{
			XMin: payload.Bounds.XMin,
			XMax: payload.Bounds.XMax,
			YMin: payload.Bounds.YMin,
			YMax: payload.Bounds.YMax,
		}
	}

	for _, z := range payload.Zones {
		if z.Name == "" {
			return nil, fmt.Errorf("LoadConfig: zone with empty name")
		}
		if len(z.Corners) != 4 {
			return nil, fmt.Errorf("LoadConfig: zone %q needs exactly 4 corners, got %d", z.Name, len(z.Corners))
		}
		zone := model.Zone{
			Name:         z.Name,
			MinWeight:    z.MinWeight,
			WeightFactor: z.WeightFactor,
		}
		for i, c := range z.Corners {
			if c < 0 {
				return nil, fmt.Errorf("LoadConfig: zone %q corner %d is not a satellite id", z.Name, c)
			}
			zone.Corners[i] = model.Satellite(c)
		}
		cfg.Zones = append(cfg.Zones, zone)
	}

	return cfg, nil
}
