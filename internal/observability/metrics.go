package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RoutingCollector bundles Prometheus metrics for a routing run: query
// counts and latencies plus gauges describing the snapshot graph the run
// operates on.
type RoutingCollector struct {
	gatherer prometheus.Gatherer

	Queries        *prometheus.CounterVec
	QueryDurations *prometheus.HistogramVec

	GraphNodes   prometheus.Gauge
	GraphEdges   prometheus.Gauge
	ZonesActive  prometheus.Gauge
	ZonesSkipped prometheus.Counter
}

// NewRoutingCollector registers routing Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when
// nil.
func NewRoutingCollector(reg prometheus.Registerer) (*RoutingCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "routing_queries_total",
		Help: "Total number of routing queries, labeled by kind and outcome.",
	}, []string{"kind", "outcome"})
	queries, err := registerCounterVec(reg, queries, "routing_queries_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "routing_query_duration_seconds",
		Help:    "Routing query latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"kind"})
	durations, err = registerHistogramVec(reg, durations, "routing_query_duration_seconds")
	if err != nil {
		return nil, err
	}

	nodes, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "snapshot_graph_nodes",
		Help: "Number of nodes in the current snapshot graph.",
	}), "snapshot_graph_nodes")
	if err != nil {
		return nil, err
	}
	edges, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "snapshot_graph_edges",
		Help: "Number of undirected edges in the current snapshot graph.",
	}), "snapshot_graph_edges")
	if err != nil {
		return nil, err
	}
	zonesActive, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "spare_zones_active",
		Help: "Number of spare-capacity zones that validated against the current snapshot.",
	}), "spare_zones_active")
	if err != nil {
		return nil, err
	}
	zonesSkipped, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spare_zones_skipped_total",
		Help: "Zones skipped because their corners were absent from a snapshot.",
	}), "spare_zones_skipped_total")
	if err != nil {
		return nil, err
	}

	return &RoutingCollector{
		gatherer:       gatherer,
		Queries:        queries,
		QueryDurations: durations,
		GraphNodes:     nodes,
		GraphEdges:     edges,
		ZonesActive:    zonesActive,
		ZonesSkipped:   zonesSkipped,
	}, nil
}

// ObserveQuery records one finished query.
func (c *RoutingCollector) ObserveQuery(kind, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.Queries != nil {
		c.Queries.WithLabelValues(kind, outcome).Inc()
	}
	if c.QueryDurations != nil {
		c.QueryDurations.WithLabelValues(kind).Observe(elapsed.Seconds())
	}
}

// SetGraphCounts drives the snapshot gauges after a graph build.
func (c *RoutingCollector) SetGraphCounts(nodes, edges int) {
	if c == nil {
		return
	}
	if c.GraphNodes != nil {
		c.GraphNodes.Set(float64(nodes))
	}
	if c.GraphEdges != nil {
		c.GraphEdges.Set(float64(edges))
	}
}

// SetZonesActive records how many zones validated for this snapshot.
func (c *RoutingCollector) SetZonesActive(n int) {
	if c == nil || c.ZonesActive == nil {
		return
	}
	c.ZonesActive.Set(float64(n))
}

// ZoneSkipped counts one zone rejected at registration.
func (c *RoutingCollector) ZoneSkipped() {
	if c == nil || c.ZonesSkipped == nil {
		return
	}
	c.ZonesSkipped.Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *RoutingCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
