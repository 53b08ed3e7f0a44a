package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"cat-shelter/internal/platform/sentinel"
	"cat-shelter/internal/ports/docstore"
)

var _ docstore.Store = (*DocStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	body       JSONB       NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, key)
)`

// DocStore guarda documentos como JSONB en una única tabla.
type DocStore struct {
	db *sql.DB
}

func NewDocStore(db *sql.DB) *DocStore {
	return &DocStore{db: db}
}

// EnsureSchema crea la tabla si no existe.
func (s *DocStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres: ensure schema: %w", classify(err))
	}
	return nil
}

func (s *DocStore) Find(ctx context.Context, collection, key string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT body::text
		FROM documents
		WHERE collection = $1 AND key = $2
	`, collection, key)

	var body string
	if err := row.Scan(&body); err != nil {
		return nil, fmt.Errorf("postgres: find %s/%s: %w", collection, key, classify(err))
	}
	return []byte(body), nil
}

func (s *DocStore) Write(ctx context.Context, collection, key string, body []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, key, body, updated_at)
		VALUES ($1, $2, $3::jsonb, now())
		ON CONFLICT (collection, key)
		DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
	`, collection, key, string(body))
	if err != nil {
		return fmt.Errorf("postgres: write %s/%s: %w", collection, key, classify(err))
	}
	return nil
}

// classify traduce errores del driver a sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return err
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08xxx: connection exception; 57P0x: admin/crash shutdown.
		code := pgErr.Code
		return len(code) >= 2 && (code[:2] == "08" || code == "57P01" || code == "57P02" || code == "57P03")
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
