package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"alert-dashboard/internal/alerts"
	"alert-dashboard/internal/api"
	"alert-dashboard/internal/config"
	"alert-dashboard/internal/db"
	"alert-dashboard/internal/kafka"
	"alert-dashboard/internal/logging"
	"alert-dashboard/internal/utils"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config load failed:", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Logging.Dir, "alert-service", cfg.Logging.Level, true)
	if err != nil {
		log.Fatal("Logger init failed:", err)
	}
	defer logger.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Pick the store
	var store alerts.Store
	if cfg.DB.DSN == "" {
		logger.Warn("DB_DSN not set, using in-memory alert store")
		store = alerts.NewMemoryStore()
	} else {
		dbConn, err := db.New(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatalf("DB pool init failed: %v", err)
		}
		defer func() {
			dbConn.Close()
			logger.Info("DB connection closed")
		}()

		if err := utils.Retry(ctx, logger, cfg.DB.ConnectAttempts, cfg.DB.ConnectDelay, dbConn.Ping); err != nil {
			logger.Fatalf("DB connect failed: %v", err)
		}
		if err := dbConn.Migrate(ctx); err != nil {
			logger.Fatalf("DB migration failed: %v", err)
		}
		store = db.NewAlertStore(dbConn)
	}

	svc := alerts.New(store, logger)
	var wg sync.WaitGroup

	// Start Kafka consumer
	var consumer *kafka.Consumer
	if cfg.Kafka.Broker != "" {
		consumer = kafka.NewConsumer([]string{cfg.Kafka.Broker}, cfg.Kafka.Topic, cfg.Kafka.GroupID, svc, logger)
		consumer.Start(ctx, &wg)
	} else {
		logger.Warn("KAFKA_BROKER not set, alert ingestion disabled")
	}

	// Start API server
	srv := &http.Server{
		Addr:    cfg.API.Port,
		Handler: api.NewRouter(svc, logger, cfg),
	}
	go func() {
		logger.Infof("API started on %s%s", cfg.API.Port, cfg.API.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("API run failed: %v", err)
			cancel()
		}
	}()

	// Handle graceful shutdown
	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("API shutdown failed: %v", err)
	}
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Errorf("Kafka close failed: %v", err)
		}
	}
	wg.Wait()
	logger.Info("Service stopped")
}
