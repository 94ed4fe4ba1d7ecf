package main

import (
	"fmt"

	"github.com/kluelabs/extdev/pkg/extdev/config"
	"github.com/kluelabs/extdev/pkg/extdev/logging"
	"github.com/spf13/cobra"
)

// initializeLogging is the PersistentPreRunE hook shared by every command.
// It ensures the XDG directories exist and starts the file logger before
// any command logic runs.
func initializeLogging(_ *cobra.Command, _ []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("ensuring config directory: %w", err)
	}
	if err := config.EnsureStateDir(); err != nil {
		return fmt.Errorf("ensuring state directory: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logCfg := logging.Config{
		Level:      cfg.Logging.Level,
		Path:       cfg.Logging.Path,
		Rotation:   parseRotationConfig(cfg.Logging.Rotation),
		Components: cfg.Logging.Components,
	}

	// Verbose runs mirror debug logs to stderr alongside the log file.
	if getVerbose() {
		logCfg.ConsoleLevel = "debug"
	}

	if err := logging.Init(logCfg); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	return nil
}

// parseRotationConfig converts config rotation settings into the logging
// package's form. Unparseable or missing sizes fall back to 10MB.
func parseRotationConfig(rc config.RotationConfig) logging.RotationConfig {
	maxSize, err := config.ParseSize(rc.MaxSize)
	if err != nil || maxSize <= 0 {
		maxSize = logging.DefaultRotationConfig().MaxSize
	}

	return logging.RotationConfig{
		MaxSize:    maxSize,
		MaxAge:     rc.MaxAge,
		MaxBackups: rc.MaxBackups,
		Daily:      rc.Daily,
	}
}
