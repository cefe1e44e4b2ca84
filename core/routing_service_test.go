package core

import (
	"context"
	"errors"
	"testing"

	"github.com/charliebarber/sat-routing-2d/internal/logging"
	"github.com/charliebarber/sat-routing-2d/internal/observability"
	"github.com/charliebarber/sat-routing-2d/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestService(t *testing.T, g *Graph) (*RoutingService, *observability.RoutingCollector) {
	t.Helper()
	collector, err := observability.NewRoutingCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewRoutingCollector: %v", err)
	}
	svc := NewRoutingService(g, NewZoneRegistry(g), testLDN, testNYC, logging.Noop(), collector)
	return svc, collector
}

func TestRoutingService_RunsAllQueries(t *testing.T) {
	g := mustBuild(t, testConfig(), pathTestLinks())
	svc, collector := newTestService(t, g)
	ctx := context.Background()

	factorZone := spareZone()
	factorZone.Name = "spare-2"
	factorZone.MinWeight = 0
	factorZone.WeightFactor = 1.25

	impossible := spareZone()
	impossible.Name = "impossible"
	impossible.MinWeight = 1000

	ghost := spareZone()
	ghost.Name = "ghost"
	ghost.Corners[3] = model.Satellite(500)

	svc.RegisterZones(ctx, []model.Zone{spareZone(), factorZone, impossible, ghost})

	results := svc.Run(ctx)
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4 (regular + 3 zones)", len(results))
	}

	regular := results[0]
	if regular.Kind != model.QueryRegular || regular.Err != nil {
		t.Fatalf("regular result = %+v", regular)
	}
	if !almostEqual(regular.Path.Weight, 4.4) {
		t.Errorf("regular weight = %v, want 4.4", regular.Path.Weight)
	}

	// Zone results follow in registration order.
	if results[1].Zone != "spare-1" || results[2].Zone != "spare-2" || results[3].Zone != "impossible" {
		t.Fatalf("zone result order = %s, %s, %s", results[1].Zone, results[2].Zone, results[3].Zone)
	}

	// Absolute floor of 10 forces the heavier corner ordering.
	if results[1].Err != nil || !almostEqual(results[1].Path.Weight, 11.4) {
		t.Errorf("spare-1 result = %+v, want weight 11.4", results[1])
	}
	// Relative floor is 1.25 x the 4.4 baseline = 5.5.
	if results[2].Err != nil || !almostEqual(results[2].Path.Weight, 7.4) {
		t.Errorf("spare-2 result = %+v, want weight 7.4", results[2])
	}
	if results[2].Path.Weight < 1.25*regular.Path.Weight {
		t.Errorf("spare-2 weight %v under the relative floor", results[2].Path.Weight)
	}
	// A zone no route can satisfy fails alone; the other queries still ran.
	if !errors.Is(results[3].Err, ErrNoQualifyingPath) {
		t.Errorf("impossible zone err = %v, want ErrNoQualifyingPath", results[3].Err)
	}

	if got := testutil.ToFloat64(collector.ZonesActive); got != 3 {
		t.Errorf("spare_zones_active = %v, want 3", got)
	}
	if got := testutil.ToFloat64(collector.ZonesSkipped); got != 1 {
		t.Errorf("spare_zones_skipped_total = %v, want 1", got)
	}
	// 6 satellites + 2 ground stations; 6 satellite links + 2 attachments.
	if got := testutil.ToFloat64(collector.GraphNodes); got != 8 {
		t.Errorf("snapshot_graph_nodes = %v, want 8", got)
	}
	if got := testutil.ToFloat64(collector.GraphEdges); got != 8 {
		t.Errorf("snapshot_graph_edges = %v, want 8", got)
	}

	if got := testutil.ToFloat64(collector.Queries.WithLabelValues("regular", "ok")); got != 1 {
		t.Errorf("regular ok queries = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.Queries.WithLabelValues("zone_constrained", "ok")); got != 2 {
		t.Errorf("zone ok queries = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.Queries.WithLabelValues("zone_constrained", "no_qualifying_path")); got != 1 {
		t.Errorf("zone no_qualifying_path queries = %v, want 1", got)
	}
}

func TestRoutingService_DisjointAlternatives(t *testing.T) {
	g := mustBuild(t, disjointConfig(), disjointLinks())
	svc, _ := newTestService(t, g)
	svc.Disjoint = 3

	results := svc.Run(context.Background())
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		if r.Kind != model.QueryRegular || r.Err != nil {
			t.Fatalf("result %d = %+v, want regular success", i, r)
		}
		if i > 0 && results[i].Path.Weight <= results[i-1].Path.Weight {
			t.Errorf("alternative %d not heavier than %d", i, i-1)
		}
	}
}

func TestRoutingService_RegularFailureIsReported(t *testing.T) {
	g := mustBuild(t, testConfig(), []LinkSpec{
		link(1, 3, 1),
		link(2, 6, 1),
	})
	svc, collector := newTestService(t, g)

	results := svc.Run(context.Background())
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if !errors.Is(results[0].Err, ErrNoPath) {
		t.Errorf("err = %v, want ErrNoPath", results[0].Err)
	}
	if got := testutil.ToFloat64(collector.Queries.WithLabelValues("regular", "no_path")); got != 1 {
		t.Errorf("regular no_path queries = %v, want 1", got)
	}
}
