package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logging"

	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.Fatalf("Invalid logging configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		logrus.Fatalf("Failed to open database: %v", err)
	}

	// --- External adapters ---
	infra, err := connect(context.Background(), cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize infrastructure: %v", err)
	}
	defer infra.Close()

	srv, err := newApp(cfg, db, infra)
	if err != nil {
		logrus.Fatalf("Failed to create app: %v", err)
	}

	stopCleanup := make(chan struct{})
	srv.limiter.StartCleanup(time.Minute, stopCleanup)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("Starting server on port %s", cfg.AppPort)
		if err := srv.app.Listen(cfg.AppPort); err != nil {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	logrus.Info("Shutting down server...")

	close(stopCleanup)
	if err := srv.app.Shutdown(); err != nil {
		logrus.Errorf("Error during Fiber shutdown: %v", err)
	}
	srv.orders.Wait()

	logrus.Info("Server gracefully stopped")
}
