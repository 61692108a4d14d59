// Package postgres implements the repository ports over PostgreSQL. The
// shipped configuration is memory-only; this adapter is the optional
// persistence backend selected by DATABASE_URL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		// Single-account model: the CHECK pins the table to one row.
		"CREATE TABLE IF NOT EXISTS profile (singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton), id TEXT NOT NULL, username TEXT NOT NULL, credential_hash TEXT NOT NULL, display_name TEXT NOT NULL, profile_picture TEXT NOT NULL DEFAULT '', email TEXT NOT NULL DEFAULT '', bio TEXT NOT NULL DEFAULT '', created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS posts (id TEXT PRIMARY KEY, photo TEXT NOT NULL, caption TEXT NOT NULL DEFAULT '', prompt_id BIGINT NOT NULL DEFAULT 0, created_at TIMESTAMPTZ NOT NULL, author_username TEXT NOT NULL, author_display_name TEXT NOT NULL, like_count INT NOT NULL DEFAULT 0);",
		"CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);",
		"CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_username);",
		"CREATE TABLE IF NOT EXISTS post_likes (post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE, username TEXT NOT NULL, PRIMARY KEY (post_id, username));",
		"CREATE TABLE IF NOT EXISTS comments (id TEXT PRIMARY KEY, post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE, body TEXT NOT NULL, author_username TEXT NOT NULL, author_display_name TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);",
		"CREATE TABLE IF NOT EXISTS follows (follower TEXT NOT NULL, followee TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL, PRIMARY KEY (follower, followee));",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, username TEXT NOT NULL, expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
