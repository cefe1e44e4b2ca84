package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charliebarber/sat-routing-2d/internal/logging"
	"github.com/charliebarber/sat-routing-2d/internal/observability"
	"github.com/charliebarber/sat-routing-2d/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RoutingService runs the per-snapshot query set: one regular query
// between the two ground stations, plus one zone-constrained query per
// active zone. Queries share the immutable graph and registry read-only,
// so they fan out concurrently with no locks; each writes an independent
// QueryResult.
//
// Structural failures (a ground station with no attachment) surface at
// graph build time and abort the run before the service exists. Per-query
// failures are isolated: a failed query's result carries the error and the
// remaining queries still report.
type RoutingService struct {
	Graph    *Graph
	Zones    *ZoneRegistry
	Source   model.NodeID
	Target   model.NodeID
	Disjoint int // alternatives for the regular query; 0 means 1

	log     logging.Logger
	metrics *observability.RoutingCollector
	tracer  trace.Tracer
}

// NewRoutingService wires a service over a built graph. Logger and
// collector may be nil.
func NewRoutingService(g *Graph, zones *ZoneRegistry, source, target model.NodeID, log logging.Logger, metrics *observability.RoutingCollector) *RoutingService {
	if log == nil {
		log = logging.Noop()
	}
	return &RoutingService{
		Graph:   g,
		Zones:   zones,
		Source:  source,
		Target:  target,
		log:     log,
		metrics: metrics,
		tracer:  otel.Tracer("core/routing"),
	}
}

// RegisterZones validates each configured zone against the graph. Invalid
// zones are logged, counted, and skipped; the run continues with whatever
// validated.
func (s *RoutingService) RegisterZones(ctx context.Context, zones []model.Zone) {
	for _, z := range zones {
		if _, err := s.Zones.Register(z); err != nil {
			s.log.Warn(ctx, "zone skipped for this snapshot",
				logging.String("zone", z.Name),
				logging.String("error", err.Error()),
			)
			s.metrics.ZoneSkipped()
			continue
		}
	}
	s.metrics.SetZonesActive(len(s.Zones.Zones()))
}

// Run executes all queries for the snapshot concurrently and returns their
// results in deterministic order: the regular query first (plus any
// disjoint alternatives), then one zone-constrained result per active zone
// in registration order.
func (s *RoutingService) Run(ctx context.Context) []model.QueryResult {
	s.metrics.SetGraphCounts(s.Graph.NodeCount(), s.Graph.EdgeCount())

	zones := s.Zones.Zones()

	// The zone floor may be relative to the baseline shortest weight, so
	// the baseline runs first; zone queries then fan out concurrently.
	regular := s.runRegular(ctx)

	baseline := 0.0
	if len(regular) > 0 && regular[0].Err == nil {
		baseline = regular[0].Path.Weight
	}

	zoneResults := make([]model.QueryResult, len(zones))
	var wg sync.WaitGroup
	for i, zone := range zones {
		wg.Add(1)
		go func(i int, zone *ZoneHandle) {
			defer wg.Done()
			zoneResults[i] = s.runZoneConstrained(ctx, zone, zone.Zone.Floor(baseline))
		}(i, zone)
	}
	wg.Wait()

	return append(regular, zoneResults...)
}

// runRegular computes the baseline shortest path and, when configured, its
// node-disjoint alternatives. All share the QueryRegular classification;
// the first result is the baseline.
func (s *RoutingService) runRegular(ctx context.Context) []model.QueryResult {
	ctx, log := logging.WithQueryLogger(ctx, s.log)
	ctx, span := s.tracer.Start(ctx, "routing.regular",
		trace.WithAttributes(
			attribute.String("source", s.Source.String()),
			attribute.String("target", s.Target.String()),
		))
	defer span.End()

	k := s.Disjoint
	if k <= 0 {
		k = 1
	}

	start := time.Now()
	paths, err := DisjointShortestPaths(s.Graph, s.Source, s.Target, k)
	elapsed := time.Since(start)

	if err != nil {
		log.Warn(ctx, "regular query failed",
			logging.String("error", err.Error()),
			logging.Any("elapsed", elapsed),
		)
		s.metrics.ObserveQuery(string(model.QueryRegular), outcomeLabel(err), elapsed)
		span.RecordError(err)
		return []model.QueryResult{{Kind: model.QueryRegular, Err: err}}
	}

	log.Info(ctx, "regular query done",
		logging.Int("paths", len(paths)),
		logging.Float64("weight", paths[0].Weight),
		logging.Int("hops", paths[0].Hops()),
	)
	s.metrics.ObserveQuery(string(model.QueryRegular), "ok", elapsed)

	out := make([]model.QueryResult, 0, len(paths))
	for _, p := range paths {
		out = append(out, model.QueryResult{Kind: model.QueryRegular, Path: p})
	}
	return out
}

func (s *RoutingService) runZoneConstrained(ctx context.Context, zone *ZoneHandle, floor float64) model.QueryResult {
	ctx, log := logging.WithQueryLogger(ctx, s.log.With(logging.String("zone", zone.Name())))
	ctx, span := s.tracer.Start(ctx, "routing.zone_constrained",
		trace.WithAttributes(
			attribute.String("zone", zone.Name()),
			attribute.Float64("floor", floor),
		))
	defer span.End()

	start := time.Now()
	path, err := ZoneConstrainedPath(s.Graph, s.Source, s.Target, zone, floor)
	elapsed := time.Since(start)

	result := model.QueryResult{
		Kind: model.QueryZoneConstrained,
		Zone: zone.Name(),
		Path: path,
		Err:  err,
	}

	if err != nil {
		log.Warn(ctx, "zone query failed",
			logging.Float64("floor", floor),
			logging.String("error", err.Error()),
		)
		span.RecordError(err)
	} else {
		log.Info(ctx, "zone query done",
			logging.Float64("floor", floor),
			logging.Float64("weight", path.Weight),
			logging.Int("hops", path.Hops()),
		)
	}
	s.metrics.ObserveQuery(string(model.QueryZoneConstrained), outcomeLabel(err), elapsed)

	return result
}

// outcomeLabel collapses the error taxonomy into stable metric labels.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoPath):
		return "no_path"
	case errors.Is(err, ErrNoQualifyingPath):
		return "no_qualifying_path"
	default:
		return "error"
	}
}
