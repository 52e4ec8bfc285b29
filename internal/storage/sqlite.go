// Package storage keeps a local archive of processed batches in SQLite so
// past runs can be inspected without touching the shared spreadsheet.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/calvescott/ledgerflow/internal/model"
	"github.com/calvescott/ledgerflow/internal/pipeline"
)

// SQLiteArchive records processed batches and their normalized rows.
type SQLiteArchive struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	bank TEXT NOT NULL,
	account_type TEXT NOT NULL,
	month_key TEXT NOT NULL,
	section_label TEXT NOT NULL,
	row_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS archived_transactions (
	run_id TEXT NOT NULL REFERENCES runs(id),
	date TEXT NOT NULL,
	category TEXT NOT NULL,
	description TEXT NOT NULL,
	amount REAL NOT NULL,
	bank TEXT NOT NULL,
	is_bookkeeping INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_archived_transactions_run ON archived_transactions(run_id);
`

// NewSQLiteArchive opens (or creates) the archive database at dbPath.
func NewSQLiteArchive(dbPath string) (*SQLiteArchive, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("archive path must not be empty")
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping archive database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create archive schema: %w", err)
	}

	return &SQLiteArchive{db: db}, nil
}

// Close closes the database connection.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

// SaveRun archives one processed batch and returns the run id.
func (a *SQLiteArchive) SaveRun(ctx context.Context, monthKey, label string, txns []model.Transaction) (string, error) {
	runID := uuid.NewString()

	bank := ""
	accountType := ""
	if len(txns) > 0 {
		bank = txns[0].Bank
		accountType = string(txns[0].AccountType)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin archive transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, bank, account_type, month_key, section_label, row_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UTC(), bank, accountType, monthKey, label, len(txns))
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO archived_transactions (run_id, date, category, description, amount, bank, is_bookkeeping)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range txns {
		_, err = stmt.ExecContext(ctx,
			runID, t.Date, t.Category, t.Description, t.NormalizedAmount, t.Bank, t.IsBookkeeping)
		if err != nil {
			return "", fmt.Errorf("failed to insert archived transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit archive transaction: %w", err)
	}

	return runID, nil
}

// RunRows returns the archived six-column rows of one run, in insert order.
func (a *SQLiteArchive) RunRows(ctx context.Context, runID string) ([][]string, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT date, category, description, amount, bank, is_bookkeeping
		 FROM archived_transactions WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.Date, &t.Category, &t.Description, &t.NormalizedAmount, &t.Bank, &t.IsBookkeeping); err != nil {
			return nil, fmt.Errorf("failed to scan archived transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read archived transactions: %w", err)
	}

	return pipeline.Rows(out), nil
}
