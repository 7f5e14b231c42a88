package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nugen/evgb/internal/config"
	"github.com/nugen/evgb/internal/runtime"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the configuration file")
	flag.Parse()

	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	b, err := runtime.New(
		runtime.WithLogger(logger),
		runtime.WithConfigFile(*configPath),
	)
	if err != nil {
		log.Fatalf("Failed to create bridge: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Start(ctx); err != nil {
		log.Fatalf("Failed to start bridge: %v", err)
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping bridge")
	case err := <-b.Done():
		if err != nil {
			logger.Error("server failed", slog.String("error", err.Error()))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := b.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
