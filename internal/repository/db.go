package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// schema holds every table the validator persists. JSON columns carry the
// line items and reconciliation payloads; reshaping them into child tables
// buys nothing at this scale.
const schema = `
CREATE TABLE IF NOT EXISTS contracts (
	id              TEXT PRIMARY KEY,
	supplier_name   TEXT NOT NULL,
	items           TEXT NOT NULL,
	effective_date  TEXT,
	expiration_date TEXT,
	payment_terms   TEXT,
	max_amount      REAL,
	needs_review    INTEGER NOT NULL DEFAULT 0,
	created_at      TEXT NOT NULL,
	updated_at      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS invoices (
	id             TEXT PRIMARY KEY,
	invoice_number TEXT NOT NULL,
	supplier_name  TEXT NOT NULL,
	issue_date     TEXT NOT NULL,
	due_date       TEXT,
	items          TEXT NOT NULL,
	subtotal       REAL NOT NULL,
	tax            REAL NOT NULL,
	total          REAL NOT NULL,
	raw_text       TEXT NOT NULL DEFAULT '',
	needs_review   INTEGER NOT NULL DEFAULT 0,
	created_at     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS comparison_results (
	id            TEXT PRIMARY KEY,
	contract_id   TEXT NOT NULL,
	matches       TEXT NOT NULL,
	issues        TEXT NOT NULL,
	overall_match INTEGER NOT NULL,
	price_details TEXT NOT NULL,
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_contract ON comparison_results(contract_id);
`

// Open opens (creating if needed) the SQLite database at path and applies
// the schema. modernc.org/sqlite registers itself under driver name "sqlite".
func Open(path string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Info("database opened", "path", path)
	return db, nil
}

// HealthCheck pings the database with an optional timeout.
func HealthCheck(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return db.PingContext(ctx)
}

// Close closes the database connection gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
		return
	}
	logger.Info("database closed")
}
