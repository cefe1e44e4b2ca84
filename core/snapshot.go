package core

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/charliebarber/sat-routing-2d/model"
)

// LinkSpec is one declared link in a snapshot: the unordered endpoint pair
// plus the length and link-midpoint Y value the capture recorded.
type LinkSpec struct {
	A, B   model.NodeID
	Length float64
	MidY   float64
}

// Snapshot is a single time-sampled capture of the constellation: the node
// population and the links that existed at capture time. It is the unit of
// work for one routing run; nothing here survives across snapshots.
type Snapshot struct {
	Nodes []model.NodeID
	Links []LinkSpec
}

// Snapshot line grammar, as written by the capture tooling:
//
//	Node 42 with links: ...
//	Link (42,43) (length 1.00, y value of the midpoint -3.00)
//
// Negative node ids are ground stations and are translated to named
// NodeIDs via the config.
var (
	nodeLineRe = regexp.MustCompile(`Node (\-?\d+) with links:`)
	linkRe     = regexp.MustCompile(`Link \((\-?\d+),(\-?\d+)\) \(length ([\d.]+), y value of the midpoint ([\-.\d]+)\)`)
)

// LoadSnapshot parses the plain-text snapshot format from r. It fails only
// on structural problems (unreadable input, a negative id with no ground
// station configured); a line that matches neither pattern is ignored, the
// same way the original capture files interleave commentary with records.
func LoadSnapshot(r io.Reader, cfg *model.Config) (*Snapshot, error) {
	snap := &Snapshot{}
	seen := make(map[model.NodeID]bool)

	addNode := func(id model.NodeID) {
		if !seen[id] {
			seen[id] = true
			snap.Nodes = append(snap.Nodes, id)
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()

		if m := nodeLineRe.FindStringSubmatch(text); m != nil {
			id, err := translateRawID(m[1], cfg)
			if err != nil {
				return nil, fmt.Errorf("LoadSnapshot: line %d: %w", line, err)
			}
			addNode(id)
		}

		for _, m := range linkRe.FindAllStringSubmatch(text, -1) {
			a, err := translateRawID(m[1], cfg)
			if err != nil {
				return nil, fmt.Errorf("LoadSnapshot: line %d: %w", line, err)
			}
			b, err := translateRawID(m[2], cfg)
			if err != nil {
				return nil, fmt.Errorf("LoadSnapshot: line %d: %w", line, err)
			}
			length, err := strconv.ParseFloat(m[3], 64)
			if err != nil {
				return nil, fmt.Errorf("LoadSnapshot: line %d: bad length %q: %w", line, m[3], err)
			}
			midY, err := strconv.ParseFloat(m[4], 64)
			if err != nil {
				return nil, fmt.Errorf("LoadSnapshot: line %d: bad midpoint %q: %w", line, m[4], err)
			}

			addNode(a)
			addNode(b)
			snap.Links = append(snap.Links, LinkSpec{A: a, B: b, Length: length, MidY: midY})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("LoadSnapshot: read failed: %w", err)
	}

	return snap, nil
}

// translateRawID maps a raw snapshot integer to a NodeID. Non-negative ids
// are satellite indices; negative ids must match a configured ground
// station.
func translateRawID(raw string, cfg *model.Config) (model.NodeID, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return model.NodeID{}, fmt.Errorf("bad node id %q: %w", raw, err)
	}
	if n >= 0 {
		return model.Satellite(n), nil
	}
	if gs := cfg.GroundStationByRawID(n); gs != nil {
		return model.GroundStation(gs.Name), nil
	}
	return model.NodeID{}, fmt.Errorf("snapshot references unconfigured ground station id %d", n)
}
