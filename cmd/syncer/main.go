package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/claimsight/dealersync/pkg/config"
	"github.com/claimsight/dealersync/pkg/pgutil"
	"github.com/claimsight/dealersync/pkg/source"
	syncer "github.com/claimsight/dealersync/pkg/sync"
	"github.com/claimsight/dealersync/pkg/warehouse"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting warehouse synchronizer",
		zap.String("config", *configPath),
		zap.String("source_database", cfg.Source.Database),
		zap.String("warehouse_database", cfg.Database.Database))

	ctx := context.Background()

	// Connect to the source document store
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Source.ConnectTimeout+5*time.Second)
	src, err := source.NewClient(connectCtx, &cfg.Source, logger)
	cancel()
	if err != nil {
		logger.Fatal("Failed to connect to source store", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := src.Close(closeCtx); err != nil {
			logger.Warn("Failed to close source connection", zap.Error(err))
		}
	}()

	// Connect to the warehouse
	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to warehouse database", zap.Error(err))
	}
	defer db.Close()

	store := warehouse.NewStore(db, cfg.Sync.PageSize)

	if cfg.Monitoring.Enabled {
		go serveMetrics(cfg.Monitoring.MetricsPort, logger)
	}

	engine := syncer.NewEngine(cfg.Sync, src, store, logger)
	report := engine.Run(ctx)

	for _, phase := range report.Phases {
		logger.Info("Phase result",
			zap.String("entity", phase.Entity),
			zap.String("outcome", string(phase.Outcome)),
			zap.Int("selected", phase.Selected),
			zap.Int("upserted", phase.Upserted),
			zap.Int("skipped", phase.Skipped),
			zap.Int("failed_batches", phase.FailedBatches),
			zap.Duration("duration", phase.Duration))
	}

	logger.Info("Synchronizer exiting",
		zap.String("outcome", string(report.Outcome())),
		zap.Duration("duration", report.Duration))
}

func serveMetrics(port int, logger *zap.Logger) {
	addr := fmt.Sprintf(":%d", port)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("Metrics listener started", zap.String("address", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("Metrics listener stopped", zap.Error(err))
	}
}
