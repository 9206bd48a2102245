package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Elisha-Seme/assetqr/internal/database"
	"github.com/Elisha-Seme/assetqr/internal/model"
)

type migrationStep struct {
	Name string
	SQL  map[database.Dialect]string
}

var steps = []migrationStep{
	{
		Name: "create_table_assets",
		SQL: map[database.Dialect]string{
			database.DialectSQLite: `CREATE TABLE IF NOT EXISTS assets (
  id            INTEGER   PRIMARY KEY AUTOINCREMENT,
  asset_id      TEXT      NOT NULL UNIQUE,
  name          TEXT      NOT NULL,
  category      TEXT      NOT NULL DEFAULT '',
  description   TEXT      NOT NULL DEFAULT '',
  location      TEXT      NOT NULL DEFAULT '',
  status        TEXT      NOT NULL DEFAULT 'active',
  serial_number TEXT      NOT NULL DEFAULT '',
  purchase_date TEXT      NOT NULL DEFAULT '',
  notes         TEXT      NOT NULL DEFAULT '',
  qr_code_path  TEXT      NOT NULL DEFAULT '',
  created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
			database.DialectPostgres: `CREATE TABLE IF NOT EXISTS assets (
  id            BIGSERIAL   PRIMARY KEY,
  asset_id      TEXT        NOT NULL UNIQUE,
  name          TEXT        NOT NULL,
  category      TEXT        NOT NULL DEFAULT '',
  description   TEXT        NOT NULL DEFAULT '',
  location      TEXT        NOT NULL DEFAULT '',
  status        TEXT        NOT NULL DEFAULT 'active',
  serial_number TEXT        NOT NULL DEFAULT '',
  purchase_date TEXT        NOT NULL DEFAULT '',
  notes         TEXT        NOT NULL DEFAULT '',
  qr_code_path  TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		},
	},
	{
		Name: "create_table_settings",
		SQL: map[database.Dialect]string{
			database.DialectSQLite: `CREATE TABLE IF NOT EXISTS settings (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL DEFAULT ''
);`,
			database.DialectPostgres: `CREATE TABLE IF NOT EXISTS settings (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL DEFAULT ''
);`,
		},
	},
	{
		Name: "create_index_assets_name",
		SQL:  both(`CREATE INDEX IF NOT EXISTS idx_assets_name ON assets (name);`),
	},
	{
		Name: "create_index_assets_category",
		SQL:  both(`CREATE INDEX IF NOT EXISTS idx_assets_category ON assets (category);`),
	},
	{
		Name: "create_index_assets_status",
		SQL:  both(`CREATE INDEX IF NOT EXISTS idx_assets_status ON assets (status);`),
	},
}

// additiveColumns were introduced after the first schema. Databases created
// before them get the columns added with an empty-string default.
var additiveColumns = []string{"custodian", "donor", "value_ksh"}

// defaultSettings are inserted only when the key is absent.
var defaultSettings = []model.Setting{
	{Key: model.SettingBaseURL, Value: model.DefaultBaseURL},
	{Key: model.SettingCompanyName, Value: model.DefaultCompanyName},
	{Key: model.SettingQRColor, Value: model.DefaultQRColor},
}

func both(q string) map[database.Dialect]string {
	return map[database.Dialect]string{database.DialectSQLite: q, database.DialectPostgres: q}
}

// EnsureMigrated brings the schema up to date. Every step is idempotent, so it
// runs on each start: tables and indexes are created if missing, legacy
// tables gain the additive columns, and default settings are seeded.
func EnsureMigrated(ctx context.Context, db *sql.DB, dialect database.Dialect, log *slog.Logger) error {
	start := time.Now()
	log = log.With("component", "database", "dialect", string(dialect))

	log.Info("db_migration_start", "event", "db_migration_start", "status", "in_progress")

	fail := func(step string, stepStart time.Time, err error) error {
		log.Error("db_migration_failed",
			"event", "db_migration_failed",
			"status", "error",
			"migration_step", step,
			"error_message", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
		return fmt.Errorf("migration step %s failed: %w", step, err)
	}

	for _, step := range steps {
		stepStart := time.Now()
		q, ok := step.SQL[dialect]
		if !ok {
			return fail(step.Name, stepStart, fmt.Errorf("no statement for dialect %q", dialect))
		}
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fail(step.Name, stepStart, err)
		}
		log.Debug("db_migration_step",
			"event", "db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	stepStart := time.Now()
	added, err := addColumns(ctx, db, dialect)
	if err != nil {
		return fail("add_additive_columns", stepStart, err)
	}
	if len(added) > 0 {
		log.Info("db_migration_step",
			"event", "db_migration_step",
			"status", "success",
			"migration_step", "add_additive_columns",
			"columns", added,
		)
	}

	stepStart = time.Now()
	if err := seedSettings(ctx, db, dialect); err != nil {
		return fail("seed_settings", stepStart, err)
	}

	log.Info("db_migration_success",
		"event", "db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func addColumns(ctx context.Context, db *sql.DB, dialect database.Dialect) ([]string, error) {
	existing, err := columnNames(ctx, db, dialect)
	if err != nil {
		return nil, err
	}
	var added []string
	for _, col := range additiveColumns {
		if existing[col] {
			continue
		}
		q := fmt.Sprintf(`ALTER TABLE assets ADD COLUMN %s TEXT NOT NULL DEFAULT ''`, col)
		if _, err := db.ExecContext(ctx, q); err != nil {
			return added, fmt.Errorf("add column %s: %w", col, err)
		}
		added = append(added, col)
	}
	return added, nil
}

func columnNames(ctx context.Context, db *sql.DB, dialect database.Dialect) (map[string]bool, error) {
	var q string
	switch dialect {
	case database.DialectPostgres:
		q = `SELECT column_name FROM information_schema.columns WHERE table_name = 'assets'`
	default:
		q = `SELECT name FROM pragma_table_info('assets')`
	}
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

func seedSettings(ctx context.Context, db *sql.DB, dialect database.Dialect) error {
	q := dialect.Rebind(`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT (key) DO NOTHING`)
	for _, s := range defaultSettings {
		if _, err := db.ExecContext(ctx, q, s.Key, s.Value); err != nil {
			return fmt.Errorf("seed %s: %w", s.Key, err)
		}
	}
	return nil
}
