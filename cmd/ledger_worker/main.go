package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pettycash-ledger/internal/config"
	"github.com/pettycash-ledger/internal/data/mongo"
	"github.com/pettycash-ledger/internal/data/postgres"
	"github.com/pettycash-ledger/internal/ledger_worker/components"
	"github.com/pettycash-ledger/internal/ledger_worker/consumer"
	"github.com/pettycash-ledger/internal/ledger_worker/outbox_poller"
	"github.com/pettycash-ledger/internal/ledger_worker/service"
	"github.com/pettycash-ledger/internal/logger"
	"github.com/pettycash-ledger/internal/platform/messaging/consumers"
	"github.com/pettycash-ledger/internal/platform/messaging/producers"
	"github.com/pettycash-ledger/internal/platform/persistence"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("ledger_worker")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	log.Info("Starting ledger worker",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

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

	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)
	reportRepo := mongo.NewReportRepository(log, mongoDB.Database())
	if err := reportRepo.EnsureIndexes(appCtx); err != nil {
		log.Error("Failed to prepare report archive", "error", err)
		os.Exit(1)
	}

	eventProducer, err := producers.NewLedgerEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize ledger event producer", "error", err)
		os.Exit(1)
	}

	// dlqProducer is nil when no DLQ topic is configured; the handler then drops poison messages
	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		os.Exit(1)
	}

	kafkaConsumer := consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka)

	archiveService := components.CreateArchiveService(reportRepo, log, cfg)
	eventHandler := consumer.NewLedgerEventHandler(log, archiveService, dlqProducer)

	poller := outbox_poller.NewPoller(
		&cfg.Outbox,
		outboxRepo,
		outbox_poller.NewKafkaEventPublisher(outboxRepo, eventProducer, log),
		log,
	)

	errChan := make(chan error, 1)
	var wg sync.WaitGroup

	log.Info("Starting Kafka consumer",
		"topic", cfg.Kafka.EventsTopic,
		"group", cfg.Kafka.ConsumerGroup,
	)
	if err := kafkaConsumer.Subscribe(appCtx, eventHandler.HandleMessage); err != nil {
		log.Error("Failed to subscribe to ledger events", "error", err)
		os.Exit(1)
	}
	go func() {
		<-kafkaConsumer.Done()
		if appCtx.Err() == nil {
			errChan <- fmt.Errorf("kafka consumer stopped unexpectedly")
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.Start(appCtx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serviceErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Service error occurred", "error", err)
		serviceErr = err
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	stopped := make(chan struct{})
	go func() {
		wg.Wait()
		<-kafkaConsumer.Done()
		close(stopped)
	}()

	select {
	case <-stopped:
		log.Info("Consumer and poller stopped")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached, forcing exit")
	}

	// Pool release waits for in-flight archive writes
	if pool, ok := archiveService.(*service.WorkerPoolArchiveService); ok {
		pool.Shutdown()
	}

	if err := kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
	}
	if err := eventProducer.Close(); err != nil {
		log.Error("Error closing ledger event producer", "error", err)
	}
	if err := dlqProducer.Close(); err != nil {
		log.Error("Error closing DLQ Kafka producer", "error", err)
	}

	postgresDB.Close()

	if err := mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	if serviceErr != nil {
		log.Error("Ledger worker shutdown completed with errors", "error", serviceErr)
		os.Exit(1)
	}
	log.Info("Ledger worker shutdown completed successfully")
}
