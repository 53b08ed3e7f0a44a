package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-shelter/internal/platform/httpclient"
	"cat-shelter/internal/platform/sentinel"
)

func newTestClient(t *testing.T, body string, status int) *Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	c, err := NewClient(httpclient.Config{BaseURL: ts.URL})
	require.NoError(t, err)
	return c
}

func TestGetHistory_Decodes(t *testing.T) {
	c := newTestClient(t, `{"prices":[
		{"date":"2024-01-01T00:00:00Z","price":"900"},
		{"date":"2024-03-01T00:00:00Z","price":1500.25}
	]}`, http.StatusOK)

	h, err := c.GetHistory(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.True(t, decimal.RequireFromString("1500.25").Equal(h.Current()))
}

func TestGetHistory_EmptyIsValid(t *testing.T) {
	c := newTestClient(t, `{"prices":null}`, http.StatusOK)

	h, err := c.GetHistory(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, h)
	assert.Empty(t, h)
}

func TestGetHistory_Unavailable(t *testing.T) {
	c := newTestClient(t, "busy", http.StatusServiceUnavailable)

	_, err := c.GetHistory(context.Background(), uuid.New())
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}
