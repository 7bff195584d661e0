// Package catalogdb builds SQLite databases holding the catalog fixtures
// for tests across packages.
package catalogdb

import (
	"database/sql"
	_ "embed"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

// Schema creates the restaurants and dishes tables.
//
//go:embed schema.sql
var Schema string

// Seed inserts seven restaurants and five dishes.
//
//go:embed seed.sql
var Seed string

// Memory opens an in-memory database and runs stmts against it.
// One connection only: each :memory: connection is a separate database.
func Memory(tb testing.TB, stmts ...string) *sql.DB {
	tb.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		tb.Fatalf("open memory db: %v", err)
	}
	db.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = db.Close() })

	exec(tb, db, stmts)
	return db
}

// File writes a database file under a temp dir, runs stmts against it and
// returns its path. The handle used for seeding is closed before returning.
func File(tb testing.TB, stmts ...string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "database.sqlite")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		tb.Fatalf("open %s: %v", path, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	exec(tb, db, stmts)
	return path
}

// Seeded is File with Schema and Seed applied.
func Seeded(tb testing.TB) string {
	tb.Helper()
	return File(tb, Schema, Seed)
}

func exec(tb testing.TB, db *sql.DB, stmts []string) {
	tb.Helper()
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			tb.Fatalf("exec fixture: %v", err)
		}
	}
}
