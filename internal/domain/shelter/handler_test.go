package shelter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-shelter/internal/platform/sentinel"
)

func TestParsePaging(t *testing.T) {
	cases := []struct {
		query     string
		skip      int
		limit     int
		expectErr bool
	}{
		{"", 0, defaultLimit, false},
		{"skip=5&limit=7", 5, 7, false},
		{"limit=0", 0, 1, false},
		{"limit=1000", 0, maxLimit, false},
		{"skip=-1", 0, 0, true},
		{"skip=x", 0, 0, true},
		{"limit=y", 0, 0, true},
	}

	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/cats?"+tc.query, nil)
		skip, limit, err := parsePaging(r)
		if tc.expectErr {
			assert.Error(t, err, tc.query)
			continue
		}
		require.NoError(t, err, tc.query)
		assert.Equal(t, tc.skip, skip, tc.query)
		assert.Equal(t, tc.limit, limit, tc.query)
	}
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: nope", sentinel.ErrAuthorization), http.StatusUnauthorized},
		{fmt.Errorf("%w: bad", sentinel.ErrInvalidRequest), http.StatusBadRequest},
		{fmt.Errorf("%w: down", sentinel.ErrInternal), http.StatusBadGateway},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{context.Canceled, statusClientClosedRequest},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
		assert.Equal(t, tc.status, rr.Code, tc.err.Error())
	}
}
