package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"recordstore/internal/configuration"
	"recordstore/internal/logging"
)

func main() {
	configDir := flag.String("config", configuration.DefaultDir, "directory holding application.yml")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	cfg, err := configuration.Load(*configDir)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Init(cfg.App.LogLevel)
	slog.Info("Starting record store...", "profile", cfg.App.Profile)

	services, err := NewServices(configuration.NewProvider(cfg))
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	if err := services.Start(); err != nil {
		slog.Error("Failed to start services", "error", err)
		services.Stop()
		os.Exit(1)
	}

	slog.Info("Record store ready", "initialized", services.Host.Initialized())
	<-ctx.Done()

	slog.Info("Shutting down record store...")
	services.Stop()
}
