package main

import (
	"context"
	"log"
	"os"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/app"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/config"
)

// Creates the schema and default policies, then exits
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := app.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err := app.Migrate(context.Background(), cfg, logger); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}
