// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package planstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores documents in a single SQLite table, one row per key.
//
// Database location is chosen by configuration and must itself lie inside the
// sandbox root. The driver is pure Go, so no cgo toolchain is needed.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database at path and
// runs migrations.
func NewSQLiteRepository(ctx context.Context, path string) (*SQLiteRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single writer avoids SQLITE_BUSY between overlapping plan writes.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return repo, nil
}

func (r *SQLiteRepository) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS documents (
		key TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`)
	return err
}

// Get returns the document stored under key.
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	var content string
	err := r.db.QueryRowContext(ctx, `SELECT content FROM documents WHERE key = ?`, key).Scan(&content)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query document: %w", err)
	}
	return content, nil
}

// Put upserts content under key.
func (r *SQLiteRepository) Put(ctx context.Context, key, content string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO documents (key, content, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		key, content)
	if err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	return nil
}

// Close closes the database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// sqliteDSN builds a file: URI for path. The path is percent-encoded so that
// characters such as '?' and '#' stay part of the file name.
func sqliteDSN(path string) string {
	u := url.URL{
		Scheme:   "file",
		OmitHost: true,
		Path:     filepath.ToSlash(path),
		RawQuery: "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
	}
	return u.String()
}
