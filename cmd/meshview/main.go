// Package main is the entry point for the meshview viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/triforge/meshview/internal/config"
	"github.com/triforge/meshview/internal/logger"
	"github.com/triforge/meshview/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== meshview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	// Optional model path argument
	if path := config.ModelArg(); path != "" {
		app.OpenModel(path)
	}

	if err := app.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	if err := cfg.Save(); err != nil {
		logger.Warn("failed to save config", zap.Error(err))
	}

	logger.Info("viewer closed normally")
}
