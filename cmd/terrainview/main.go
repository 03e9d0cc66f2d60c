// Package main is the entry point for the terrain viewer.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/game"
	"github.com/Faultbox/midgard-terrain/internal/logger"
)

var flagScreenshot = flag.String("screenshot", "", "Directory to save the last frame to on exit")

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

	logger.Info("=== Midgard Terrain Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Fatal("viewer error", zap.Error(err))
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	g, err := game.New(cfg, game.Options{
		Title:         "Midgard Terrain",
		ScreenshotDir: *flagScreenshot,
	})
	if err != nil {
		return fmt.Errorf("creating viewer: %w", err)
	}
	defer g.Close()

	return g.Run()
}
