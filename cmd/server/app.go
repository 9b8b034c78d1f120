package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/attune-api/internal/config"
	"github.com/phrazzld/attune-api/internal/domain/recommend"
	"github.com/phrazzld/attune-api/internal/platform/metrics"
	"github.com/phrazzld/attune-api/internal/platform/postgres"
	"github.com/phrazzld/attune-api/internal/service/auth"
	"github.com/phrazzld/attune-api/internal/service/insights"
	"github.com/prometheus/client_golang/prometheus"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	metrics         *metrics.Metrics
	jwtService      auth.JWTService
	insightsService insights.Service
}

// newApplication creates a new application instance with all dependencies
// initialized. A nil registry creates a fresh one.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	reg *prometheus.Registry,
) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(reg),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	loc, err := time.LoadLocation(cfg.Analysis.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load default timezone: %w", err)
	}

	stores := insights.Stores{
		Emotions:    postgres.NewPostgresEmotionStore(db, logger),
		Journals:    postgres.NewPostgresJournalStore(db, logger),
		Feedback:    postgres.NewPostgresFeedbackStore(db, logger),
		Preferences: postgres.NewPostgresPreferencesStore(db, logger),
	}

	engine := recommend.NewEngine(
		recommend.DefaultCatalog(),
		recommend.WithLimits(cfg.Recommendation.DefaultLimit, cfg.Recommendation.MaxLimit),
	)
	logger.Info("strategy catalog loaded", slog.Int("strategies", engine.Catalog().Len()))

	app.insightsService, err = insights.NewService(db, stores, engine, insights.Config{
		DefaultRangeDays: cfg.Analysis.DefaultRangeDays,
		MaxRangeDays:     cfg.Analysis.MaxRangeDays,
		DefaultLocation:  loc,
	}, logger, insights.WithMetrics(app.metrics))
	if err != nil {
		return nil, fmt.Errorf("failed to create insights service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
