package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pettycash-ledger/internal/api_gateway"
	"github.com/pettycash-ledger/internal/api_gateway/service"
	"github.com/pettycash-ledger/internal/config"
	"github.com/pettycash-ledger/internal/data/mongo"
	"github.com/pettycash-ledger/internal/data/postgres"
	"github.com/pettycash-ledger/internal/logger"
	"github.com/pettycash-ledger/internal/platform/persistence"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("ledger_api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	log.Info("Starting ledger API",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

	// Migrations are applied before the pool opens
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		postgresDB.Close()
		os.Exit(1)
	}

	bookRepo := postgres.NewBookRepository(log, postgresDB)
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)
	reportRepo := mongo.NewReportRepository(log, mongoDB.Database())

	ledgerService := service.NewLedgerService(log, postgresDB, bookRepo, outboxRepo)
	snapshotService := service.NewSnapshotService(log, postgresDB, bookRepo, outboxRepo)
	reportService := service.NewReportService(log, reportRepo)

	server := api_gateway.NewServer(log, cfg, ledgerService, snapshotService, reportService,
		map[string]api_gateway.HealthChecker{
			"postgres": postgresDB,
			"mongodb":  mongoDB,
		},
	)
	log.Info("REST server initialized")

	errChan := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	// Drain requests before closing the stores they use
	var shutdownErr error
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
		shutdownErr = err
	}

	postgresDB.Close()

	if err := mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
		shutdownErr = err
	}

	if serverErr != nil || shutdownErr != nil {
		log.Error("Ledger API shutdown completed with errors")
		os.Exit(1)
	}
	log.Info("Ledger API shutdown completed successfully")
}
