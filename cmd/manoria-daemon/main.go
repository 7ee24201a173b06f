package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/andrescamacho/manoria-go/internal/adapters/grpc"
	"github.com/andrescamacho/manoria-go/internal/adapters/metrics"
	"github.com/andrescamacho/manoria-go/internal/adapters/persistence"
	"github.com/andrescamacho/manoria-go/internal/application/logging"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	settlementCmd "github.com/andrescamacho/manoria-go/internal/application/settlement/commands"
	"github.com/andrescamacho/manoria-go/internal/application/setup"
	"github.com/andrescamacho/manoria-go/internal/infrastructure/catalog"
	"github.com/andrescamacho/manoria-go/internal/infrastructure/config"
	"github.com/andrescamacho/manoria-go/internal/infrastructure/database"
	"github.com/andrescamacho/manoria-go/internal/infrastructure/logger"
	"github.com/andrescamacho/manoria-go/internal/infrastructure/pidfile"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (default: search ., ./configs, /etc/manoria)")
	flag.Parse()

	fmt.Println("Manoria Daemon v0.1.0")
	fmt.Println("=====================")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, closeLog, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(appLogger)

	// One daemon per PID file; a stale file from a crashed run is replaced
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			appLogger.Warn("failed to release PID file", "error", err)
		}
	}()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("daemon stopped with error", "error", err)
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config, appLogger *slog.Logger) error {
	// 1. Database
	appLogger.Info("connecting to database", "type", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// 2. Production catalog
	cat, err := catalog.Load(cfg.Economy.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	appLogger.Info("catalog loaded",
		"resources", len(cat.ResourceKinds()),
		"buildings", len(cat.BuildingNames()))

	// 3. Metrics (before handlers so they record from the first request)
	middlewares := []mediator.Middleware{logging.Middleware(appLogger)}
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		commandCollector := metrics.NewCommandMetricsCollector()
		if err := commandCollector.Register(); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}
		economyCollector := metrics.NewEconomyMetricsCollector()
		if err := economyCollector.Register(); err != nil {
			return fmt.Errorf("failed to register economy metrics: %w", err)
		}
		metrics.SetGlobalEconomyCollector(economyCollector)
		middlewares = append(middlewares, metrics.PrometheusMiddleware(commandCollector))

		metricsServer = metrics.NewServer(cfg.Metrics.Address(), cfg.Metrics.Path, appLogger)
		if err := metricsServer.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(ctx)
		}()
	}

	// 4. Mediator with every handler
	seed := cfg.Economy.PlacementSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	registry := setup.NewHandlerRegistry(
		persistence.NewGormTransactor(db),
		persistence.NewStores(db),
		cat,
		nil, // real clock
		setup.Options{
			BuildDuration:  cfg.Economy.BuildDuration,
			SettlementGrid: cfg.Economy.SettlementGrid,
			PlacementSeed:  seed,
		},
	)
	med, err := registry.CreateConfiguredMediator(middlewares...)
	if err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}

	// 5. Default continent
	ctx := logging.WithLogger(context.Background(), appLogger)
	resp, err := med.Send(ctx, &settlementCmd.EnsureContinentCommand{
		Name:   cfg.Economy.Continent.Name,
		Width:  cfg.Economy.Continent.Width,
		Height: cfg.Economy.Continent.Height,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure continent: %w", err)
	}
	continent := resp.(*settlementCmd.EnsureContinentResponse)
	appLogger.Info("continent ready",
		"continent_id", continent.Continent.ID,
		"name", continent.Continent.Name,
		"created", continent.Created)

	// 6. gRPC server
	server, err := grpc.NewDaemonServer(med, cfg.Daemon.SocketPath, grpc.ServerOptions{
		RateLimit:       cfg.Daemon.RateLimit.Requests,
		Burst:           cfg.Daemon.RateLimit.Burst,
		ShutdownTimeout: cfg.Daemon.ShutdownTimeout,
		Logger:          appLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to create daemon server: %w", err)
	}

	fmt.Println("\n✓ Daemon is ready to accept connections")
	fmt.Println("Press Ctrl+C to stop")

	// Blocks until shutdown
	if err := server.Start(); err != nil {
		return fmt.Errorf("daemon server error: %w", err)
	}

	appLogger.Info("daemon stopped")
	return nil
}
