// Package sqlite implements the repository interfaces on an embedded
// SQLite database using the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB owns the sql.DB connection pool and the schema. The per-resource
// repos (UserRepo, PostRepo, ...) share its pool.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for tests), enables WAL
// and foreign keys, and runs the migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each pooled connection to ":memory:" would get its own empty
	// database, so keep the pool at a single connection.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL,
			email         TEXT NOT NULL,
			password_hash TEXT NOT NULL DEFAULT '',
			bio           TEXT NOT NULL DEFAULT '',
			avatar_url    TEXT NOT NULL DEFAULT '',
			is_admin      INTEGER NOT NULL DEFAULT 0,
			is_banned     INTEGER NOT NULL DEFAULT 0,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email    ON users(email);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS posts (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title       TEXT NOT NULL,
			slug        TEXT NOT NULL,
			content     TEXT NOT NULL DEFAULT '',
			likes_count INTEGER NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_posts_slug    ON posts(slug);
		CREATE INDEX IF NOT EXISTS idx_posts_user_id        ON posts(user_id);
		CREATE INDEX IF NOT EXISTS idx_posts_created_at     ON posts(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating posts table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS comments (
			id                TEXT PRIMARY KEY,
			post_id           TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			parent_comment_id TEXT REFERENCES comments(id) ON DELETE CASCADE,
			content           TEXT NOT NULL,
			likes_count       INTEGER NOT NULL DEFAULT 0,
			created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);
	`)
	if err != nil {
		return fmt.Errorf("creating comments table: %w", err)
	}

	// A like targets either a post or a comment, never both. Plain UNIQUE
	// over nullable columns would not catch duplicates (SQLite treats
	// NULLs as distinct), so each target gets a partial unique index.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS likes (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			post_id    TEXT REFERENCES posts(id) ON DELETE CASCADE,
			comment_id TEXT REFERENCES comments(id) ON DELETE CASCADE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CHECK ((post_id IS NULL) != (comment_id IS NULL))
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_user_post
			ON likes(user_id, post_id) WHERE post_id IS NOT NULL;
		CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_user_comment
			ON likes(user_id, comment_id) WHERE comment_id IS NOT NULL;
	`)
	if err != nil {
		return fmt.Errorf("creating likes table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS follows (
			id           TEXT PRIMARY KEY,
			follower_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			following_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CHECK (follower_id != following_id)
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_follows_pair
			ON follows(follower_id, following_id);
		CREATE INDEX IF NOT EXISTS idx_follows_following ON follows(following_id);
	`)
	if err != nil {
		return fmt.Errorf("creating follows table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS notifications (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			from_user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type         TEXT NOT NULL,
			post_id      TEXT REFERENCES posts(id) ON DELETE CASCADE,
			comment_id   TEXT REFERENCES comments(id) ON DELETE CASCADE,
			is_read      INTEGER NOT NULL DEFAULT 0,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating notifications table: %w", err)
	}

	return nil
}
