package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	user_id TEXT NOT NULL,
	key     TEXT NOT NULL,
	value   BLOB NOT NULL,
	PRIMARY KEY (user_id, key)
);`

// LocalCache is the SQLite-backed Cache. It plays the role browser local
// storage plays for the web client: cheap to read at startup, written
// wholesale after every change.
type LocalCache struct {
	db *sql.DB
}

func OpenLocalCache(path string) (*LocalCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init cache schema: %w", err)
	}
	return &LocalCache{db: db}, nil
}

func (c *LocalCache) Close() error {
	return c.db.Close()
}

func (c *LocalCache) Get(ctx context.Context, userID, key string) ([]byte, bool, error) {
	var value []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT value FROM cache_entries WHERE user_id = ? AND key = ?`,
		userID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get failed: %w", err)
	}
	return value, true, nil
}

func (c *LocalCache) Set(ctx context.Context, userID, key string, value []byte) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO cache_entries (user_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, key) DO UPDATE SET value = excluded.value`,
		userID, key, value)
	if err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

func (c *LocalCache) Delete(ctx context.Context, userID, key string) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE user_id = ? AND key = ?`, userID, key)
	if err != nil {
		return fmt.Errorf("cache delete failed: %w", err)
	}
	return nil
}

func (c *LocalCache) List(ctx context.Context, userID string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT key FROM cache_entries WHERE user_id = ? ORDER BY key`, userID)
	if err != nil {
		return nil, fmt.Errorf("cache list failed: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("cache list scan failed: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
