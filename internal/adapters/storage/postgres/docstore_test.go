package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"cat-shelter/internal/platform/sentinel"
)

func TestClassify(t *testing.T) {
	assert.Nil(t, classify(nil))
	assert.ErrorIs(t, classify(sql.ErrNoRows), sentinel.ErrNotFound)
	assert.ErrorIs(t, classify(driver.ErrBadConn), sentinel.ErrUnavailable)
	assert.ErrorIs(t, classify(&net.OpError{Op: "dial", Err: errors.New("refused")}), sentinel.ErrUnavailable)
	assert.ErrorIs(t, classify(&pgconn.PgError{Code: "08006"}), sentinel.ErrUnavailable)
	assert.ErrorIs(t, classify(context.Canceled), context.Canceled)
	assert.False(t, sentinel.IsTransient(classify(context.Canceled)))

	constraint := &pgconn.PgError{Code: "23505"}
	assert.False(t, sentinel.IsTransient(classify(constraint)))
}
