package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/app"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := app.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, logger); err != nil {
		logger.Error("app stopped", "error", err)
		os.Exit(1)
	}
}
