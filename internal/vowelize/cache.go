package vowelize

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const cacheSchema = `CREATE TABLE IF NOT EXISTS vowelized (
	input        TEXT NOT NULL,
	genre        TEXT NOT NULL,
	completeness TEXT NOT NULL,
	provider     TEXT NOT NULL,
	result       TEXT NOT NULL,
	created_at   INTEGER NOT NULL,
	PRIMARY KEY (input, genre, completeness, provider)
)`

// Cache remembers vowelization results in a sqlite database so repeated
// texts do not hit the network
type Cache struct {
	next    Vowelizer
	db      *sql.DB
	options Options
}

// OpenCache opens (or creates) the cache database at path
func OpenCache(path string, next Vowelizer, options Options) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise cache: %w", err)
	}

	return &Cache{next: next, db: db, options: options}, nil
}

// Name returns the wrapped provider name
func (c *Cache) Name() string {
	return c.next.Name()
}

// Vowelize returns a cached result or asks the wrapped vowelizer
func (c *Cache) Vowelize(ctx context.Context, text string) (string, error) {
	var result string
	err := c.db.QueryRowContext(ctx,
		`SELECT result FROM vowelized WHERE input = ? AND genre = ? AND completeness = ? AND provider = ?`,
		text, string(c.options.Genre), string(c.options.Completeness), c.next.Name(),
	).Scan(&result)
	switch {
	case err == nil:
		return result, nil
	case !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("cache lookup failed: %w", err)
	}

	result, err = c.next.Vowelize(ctx, text)
	if err != nil {
		return "", err
	}

	// A failed write only costs a future lookup
	_, _ = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO vowelized (input, genre, completeness, provider, result, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		text, string(c.options.Genre), string(c.options.Completeness), c.next.Name(), result, time.Now().Unix(),
	)

	return result, nil
}

// Len returns the number of cached entries
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vowelized`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Clear removes every cached entry
func (c *Cache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM vowelized`)
	return err
}

// Close closes the database
func (c *Cache) Close() error {
	return c.db.Close()
}

// ClearCache empties the cache database at path and returns how many
// entries it held
func ClearCache(ctx context.Context, path string) (int, error) {
	c, err := OpenCache(path, Passthrough{}, Options{})
	if err != nil {
		return 0, err
	}
	defer c.Close()

	n, err := c.Len(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	if err := c.Clear(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	return n, nil
}
