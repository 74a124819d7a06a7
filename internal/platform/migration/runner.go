// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL files under data/migrations with
// golang-migrate.
//
// Migrations run once at startup, after the connection supervisor succeeded
// and before the HTTP listener opens.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrDirty means a previous run failed halfway; the schema needs a manual fix.
var ErrDirty = errors.New("migration: database is dirty")

/*
RunUp applies every pending up migration.

Parameters:
  - dsn: postgres:// URL (see [ToPgx5URL])
  - path: directory holding NNNNNN_name.{up,down}.sql
  - logger: *slog.Logger

Returns:
  - error: ErrDirty, or a wrapped golang-migrate failure
*/
func RunUp(dsn, path string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+path, ToPgx5URL(dsn))
	if err != nil {
		return fmt.Errorf("migration: open: %w", err)
	}
	defer closeMigrator(migrator, logger)

	migrator.Log = &slogAdapter{logger: logger}

	// ── 1. Current State ──────────────────────────────────────────────────
	from, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		from = 0
	case err != nil:
		return fmt.Errorf("migration: read version: %w", err)
	case dirty:
		return fmt.Errorf("%w at version %d", ErrDirty, from)
	}

	// ── 2. Apply ──────────────────────────────────────────────────────────
	err = migrator.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("schema_up_to_date", slog.Uint64("version", uint64(from)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration: up from version %d: %w", from, err)
	}

	to, _, _ := migrator.Version()
	logger.Info("schema_migrated", slog.Uint64("from_version", uint64(from)), slog.Uint64("to_version", uint64(to)))
	return nil
}

// ToPgx5URL rewrites postgres:// and postgresql:// URLs to the pgx5://
// scheme registered by the golang-migrate pgx/v5 driver. Anything else is
// returned unchanged.
func ToPgx5URL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

func closeMigrator(migrator *migrate.Migrate, logger *slog.Logger) {
	sourceErr, databaseErr := migrator.Close()
	if err := errors.Join(sourceErr, databaseErr); err != nil {
		logger.Warn("migration_close_failed", slog.Any("error", err))
	}
}

// slogAdapter implements migrate.Logger on top of slog at debug level.
type slogAdapter struct {
	logger *slog.Logger
}

func (adapter *slogAdapter) Printf(format string, args ...any) {
	adapter.logger.Debug("migration_step", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (adapter *slogAdapter) Verbose() bool {
	return adapter.logger.Enabled(context.Background(), slog.LevelDebug)
}
