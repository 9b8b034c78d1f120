package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/attune-api/internal/config"
	"github.com/phrazzld/attune-api/internal/platform/logger"
)

// loadAppConfig loads the configuration and installs the structured logger
// it describes as the slog default.
func loadAppConfig(path string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("default_timezone", cfg.Analysis.DefaultTimezone))
	l.Debug("auth configuration", slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	return cfg, l, nil
}
