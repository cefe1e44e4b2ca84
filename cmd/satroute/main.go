package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charliebarber/sat-routing-2d/core"
	"github.com/charliebarber/sat-routing-2d/internal/logging"
	"github.com/charliebarber/sat-routing-2d/internal/observability"
	"github.com/charliebarber/sat-routing-2d/model"
)

func main() {
	configPath := flag.String("config", "configs/routing.json", "routing configuration JSON")
	snapshotPath := flag.String("snapshot", "snapshots/snapshot0.02s.txt", "positional snapshot file")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address (empty = disabled)")
	metricsLinger := flag.Duration("metrics-linger", 0, "keep the metrics endpoint up this long after the run finishes")

	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "tracing init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	collector, err := observability.NewRoutingCollector(nil)
	if err != nil {
		log.Error(ctx, "metrics init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", collector.Handler())
			log.Info(ctx, "metrics endpoint up", logging.String("addr", *metricsAddr))
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Warn(ctx, "metrics endpoint failed", logging.String("error", err.Error()))
			}
		}()
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Error(ctx, "config load failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	snap, err := loadSnapshot(*snapshotPath, cfg)
	if err != nil {
		log.Error(ctx, "snapshot load failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info(ctx, "snapshot loaded",
		logging.String("path", *snapshotPath),
		logging.Int("nodes", len(snap.Nodes)),
		logging.Int("links", len(snap.Links)),
	)

	graph, err := core.Build(snap, cfg)
	if err != nil {
		// Structural failures (e.g. a disconnected ground station) are
		// fatal: no query can succeed without both endpoints attached.
		log.Error(ctx, "graph build failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info(ctx, "graph built",
		logging.Int("nodes", graph.NodeCount()),
		logging.Int("edges", graph.EdgeCount()),
	)

	source := model.GroundStation(cfg.GroundStations[0].Name)
	target := model.GroundStation(cfg.GroundStations[1].Name)

	registry := core.NewZoneRegistry(graph)
	service := core.NewRoutingService(graph, registry, source, target, log, collector)
	service.Disjoint = cfg.DisjointPaths
	service.RegisterZones(ctx, cfg.Zones)

	results := service.Run(ctx)

	if err := core.WriteReport(os.Stdout, results); err != nil {
		log.Error(ctx, "report write failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	failures := 0
	for _, res := range results {
		if res.Err != nil {
			failures++
		}
	}
	log.Info(ctx, "run complete",
		logging.Int("queries", len(results)),
		logging.Int("failures", failures),
	)

	if *metricsAddr != "" && *metricsLinger > 0 {
		log.Info(ctx, "holding metrics endpoint open", logging.Any("linger", *metricsLinger))
		time.Sleep(*metricsLinger)
	}

	if failures == len(results) && len(results) > 0 {
		os.Exit(1)
	}
}

func loadConfig(path string) (*model.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()
	return core.LoadConfig(f)
}

func loadSnapshot(path string, cfg *model.Config) (*core.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %q: %w", path, err)
	}
	defer f.Close()
	return core.LoadSnapshot(f, cfg)
}
