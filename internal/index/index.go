package index

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema (functions + overlays)
const currentSchemaVersion = 1

// Index is the SQLite-backed acceleration structure for pool lookups.
type Index struct {
	db *sql.DB
}

// OverlayRow is one indexed overlay of a function in a language.
type OverlayRow struct {
	OverlayHash string
	Comment     string
}

// Open creates or opens the index database at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (the filesystem holds the durable copy)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to index database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close closes the database connection.
func (x *Index) Close() error {
	if x.db == nil {
		return nil
	}
	return x.db.Close()
}

// Reset drops every row, ahead of a rebuild from the filesystem.
func (x *Index) Reset(ctx context.Context) error {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reset index: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM overlays`); err != nil {
		return fmt.Errorf("reset index: clear overlays: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM functions`); err != nil {
		return fmt.Errorf("reset index: clear functions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reset index: commit: %w", err)
	}
	return nil
}

// UpsertFunction records that a function exists. Duplicate hashes are
// silently ignored for idempotency.
func (x *Index) UpsertFunction(ctx context.Context, functionHash string) error {
	_, err := x.db.ExecContext(ctx, `
		INSERT INTO functions (hash) VALUES (?)
		ON CONFLICT(hash) DO NOTHING
	`, functionHash)
	if err != nil {
		return fmt.Errorf("upsert function: %w", err)
	}
	return nil
}

// UpsertOverlay records one overlay of a function in a language. The comment
// column is refreshed on conflict: the overlay hash covers the comment, so a
// differing comment for the same key can only come from a rebuild after
// external pruning, and the latest filesystem state wins.
func (x *Index) UpsertOverlay(ctx context.Context, functionHash, language, overlayHash, comment string) error {
	_, err := x.db.ExecContext(ctx, `
		INSERT INTO overlays (function_hash, language, overlay_hash, comment)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(function_hash, language, overlay_hash)
		DO UPDATE SET comment = excluded.comment
	`, functionHash, language, overlayHash, comment)
	if err != nil {
		return fmt.Errorf("upsert overlay: %w", err)
	}
	return nil
}

// HasFunction reports whether a function hash is indexed.
func (x *Index) HasFunction(ctx context.Context, functionHash string) (bool, error) {
	var count int
	err := x.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM functions WHERE hash = ?
	`, functionHash).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check function: %w", err)
	}
	return count > 0, nil
}

// Languages returns the distinct languages carrying at least one overlay of
// the function, sorted.
func (x *Index) Languages(ctx context.Context, functionHash string) ([]string, error) {
	rows, err := x.db.QueryContext(ctx, `
		SELECT DISTINCT language FROM overlays
		WHERE function_hash = ?
		ORDER BY language
	`, functionHash)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	defer rows.Close()

	var languages []string
	for rows.Next() {
		var language string
		if err := rows.Scan(&language); err != nil {
			return nil, fmt.Errorf("list languages: scan: %w", err)
		}
		languages = append(languages, language)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return languages, nil
}

// Overlays returns the indexed overlays of a function in one language,
// ordered by overlay hash.
func (x *Index) Overlays(ctx context.Context, functionHash, language string) ([]OverlayRow, error) {
	rows, err := x.db.QueryContext(ctx, `
		SELECT overlay_hash, comment FROM overlays
		WHERE function_hash = ? AND language = ?
		ORDER BY overlay_hash
	`, functionHash, language)
	if err != nil {
		return nil, fmt.Errorf("list overlays: %w", err)
	}
	defer rows.Close()

	var overlays []OverlayRow
	for rows.Next() {
		var row OverlayRow
		if err := rows.Scan(&row.OverlayHash, &row.Comment); err != nil {
			return nil, fmt.Errorf("list overlays: scan: %w", err)
		}
		overlays = append(overlays, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list overlays: %w", err)
	}
	return overlays, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist. Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
