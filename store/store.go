// Package store keeps the little state the site has in SQLite: visitor
// preferences, a privacy-conscious visit log and contact messages.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS preferences (
		visitor_id TEXT PRIMARY KEY,
		theme      TEXT NOT NULL,
		language   TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS visitors (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip  TEXT NOT NULL,  -- never the raw address
		user_agent TEXT,
		path       TEXT,
		language   TEXT,
		timestamp  INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors(timestamp)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		body       TEXT NOT NULL,
		delivered  INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
}

// DB wraps the SQLite handle.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the database at dsn and applies migrations.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	// one writer at a time; also keeps ":memory:" on a single connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", dsn, err)
	}
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error { return d.db.Close() }

// Ping checks the connection, for health checks.
func (d *DB) Ping(ctx context.Context) error { return d.db.PingContext(ctx) }
