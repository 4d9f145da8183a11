// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

// Package migration applies versioned SQL schema migrations at startup.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// migrateLogger adapts slog to the migrate.Logger interface.
type migrateLogger struct {
	logger *slog.Logger
}

func (adapter *migrateLogger) Printf(format string, args ...interface{}) {
	adapter.logger.Info("migration", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (adapter *migrateLogger) Verbose() bool {
	return false
}

/*
RunUp applies all pending migrations from the given source path.

Parameters:
  - databaseURL: PostgreSQL DSN (postgres:// scheme)
  - sourcePath: Filesystem path containing the *.sql migration files
  - logger: Structured logger for migration progress

Returns:
  - error: nil when the schema is up to date (ErrNoChange is not an error)
*/
func RunUp(databaseURL, sourcePath string, logger *slog.Logger) error {

	// 1. The pgx/v5 database driver registers under the pgx5 scheme
	migrateURL := databaseURL
	if strings.HasPrefix(migrateURL, "postgres://") {
		migrateURL = "pgx5://" + strings.TrimPrefix(migrateURL, "postgres://")
	}

	// 2. Build the migrator from the file source
	migrator, err := migrate.New("file://"+sourcePath, migrateURL)
	if err != nil {
		return fmt.Errorf("init migrator: %w", err)
	}
	migrator.Log = &migrateLogger{logger: logger}

	defer func() {
		sourceErr, dbErr := migrator.Close()
		if sourceErr != nil {
			logger.Warn("migration_source_close_failed", slog.String("error", sourceErr.Error()))
		}
		if dbErr != nil {
			logger.Warn("migration_db_close_failed", slog.String("error", dbErr.Error()))
		}
	}()

	// 3. Apply everything that has not been applied yet
	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_schema_up_to_date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	logger.Info("migration_schema_migrated")
	return nil
}
