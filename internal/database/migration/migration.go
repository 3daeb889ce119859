package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_managers",
		SQL: `CREATE TABLE IF NOT EXISTS managers (
  id              UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  name            TEXT    NOT NULL,
  contracts_count INTEGER NOT NULL DEFAULT 0 CHECK (contracts_count >= 0)
);`,
	},
	{
		Name: "create_index_managers_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_managers_name ON managers (name, id);`,
	},
}

const (
	sentinelQuery = "SELECT to_regclass('public.managers') IS NOT NULL"
	lockQuery     = "SELECT pg_advisory_xact_lock($1)"

	// lockKey serializes concurrent migrators (api and reporter) on one database.
	lockKey int64 = 0x6d616e6167657273
)

// EnsureMigrated checks if the 'managers' table exists and runs migrations if it doesn't.
// All steps run in one transaction holding an advisory lock, so concurrent callers
// wait for each other and a failed run leaves nothing behind.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger zerolog.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With().Str("component", "database").Str("db_host", dbHost).Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Send()

	fail := func(step string, err error, msg string) error {
		ev := log.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds())
		if step != "" {
			ev = ev.Str("migration_step", step)
		}
		ev.Msg(msg)
		return fmt.Errorf("%s: %w", msg, err)
	}
	skip := func() {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
	}

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		return fail("", err, "failed to check sentinel table")
	}
	if exists {
		skip()
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fail("", err, "failed to begin migration")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, lockQuery, lockKey); err != nil {
		return fail("", err, "failed to acquire migration lock")
	}
	// Another instance may have migrated while we waited for the lock.
	if err := tx.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		return fail("", err, "failed to check sentinel table")
	}
	if exists {
		skip()
		return tx.Commit()
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Send()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
			return fail(step.Name, err, fmt.Sprintf("migration step %s failed", step.Name))
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	if err := tx.Commit(); err != nil {
		return fail("", err, "failed to commit migration")
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()

	return nil
}
