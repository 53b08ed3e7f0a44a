package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"cat-shelter/internal/platform/sentinel"
	"cat-shelter/internal/ports/docstore"
)

var _ docstore.Store = (*DocStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	key        TEXT NOT NULL,
	body       TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
	PRIMARY KEY (collection, key)
)`

// DocStore guarda documentos JSON en un archivo SQLite (deploys de un solo nodo).
type DocStore struct {
	db *sql.DB
}

func NewDocStore(db *sql.DB) *DocStore {
	return &DocStore{db: db}
}

func (s *DocStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: ensure schema: %w", classify(err))
	}
	return nil
}

func (s *DocStore) Find(ctx context.Context, collection, key string) ([]byte, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND key = ?`,
		collection, key,
	).Scan(&body)
	if err != nil {
		return nil, fmt.Errorf("sqlite: find %s/%s: %w", collection, key, classify(err))
	}
	return []byte(body), nil
}

func (s *DocStore) Write(ctx context.Context, collection, key string, body []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, key, body)
		VALUES (?, ?, ?)
		ON CONFLICT (collection, key)
		DO UPDATE SET body = excluded.body,
		              updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, collection, key, string(body))
	if err != nil {
		return fmt.Errorf("sqlite: write %s/%s: %w", collection, key, classify(err))
	}
	return nil
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}

	var se *sqlitedrv.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
		}
	}
	return err
}
