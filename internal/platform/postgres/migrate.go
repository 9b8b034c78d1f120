package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
)

// MigrationTableName is the goose version table.
const MigrationTableName = "schema_migrations"

// migrationsDir is the directory of the embedded migration files.
const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrationFS embed.FS

// ErrUnknownMigrationCommand is returned for commands other than
// up, down, reset, status and version.
var ErrUnknownMigrationCommand = errors.New("unknown migration command")

// goose keeps its configuration in package state.
var gooseMu sync.Mutex

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger.
func (l slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements goose.Logger. It logs at error level and does not exit,
// so the failure is returned to the caller instead.
func (l slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Migrator applies the embedded schema migrations.
type Migrator struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewMigrator creates a Migrator. If logger is nil, a default logger will be used.
func NewMigrator(db *sql.DB, logger *slog.Logger) *Migrator {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{
		db:     db,
		logger: logger.With(slog.String("component", "migrator")),
	}
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	return m.Run(ctx, "up")
}

// Run executes a goose command against the embedded migrations.
func (m *Migrator) Run(ctx context.Context, command string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationFS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(slogGooseLogger{logger: m.logger})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	m.logger.Info("starting migration command", slog.String("command", command))
	start := time.Now()

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, m.db, migrationsDir)
	case "down":
		err = goose.DownContext(ctx, m.db, migrationsDir)
	case "reset":
		err = goose.ResetContext(ctx, m.db, migrationsDir)
	case "status":
		err = goose.StatusContext(ctx, m.db, migrationsDir)
	case "version":
		err = goose.VersionContext(ctx, m.db, migrationsDir)
	default:
		return fmt.Errorf("%w: %s (expected up, down, reset, status or version)", ErrUnknownMigrationCommand, command)
	}

	duration := time.Since(start)
	if err != nil {
		m.logger.Error("migration command failed",
			slog.String("command", command),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", duration.Milliseconds()))
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	m.logger.Info("migration command finished",
		slog.String("command", command),
		slog.Int64("duration_ms", duration.Milliseconds()))
	return nil
}

// MigrationFiles lists the embedded migration file names in order.
func MigrationFiles() ([]string, error) {
	entries, err := migrationFS.ReadDir(migrationsDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// CreateMigration writes a new empty SQL migration into dir. It works on the
// source tree, not the embedded copy.
func CreateMigration(dir, name string) error {
	if name == "" {
		return fmt.Errorf("migration name is required")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(nil)
	return goose.Create(nil, dir, name, "sql")
}
