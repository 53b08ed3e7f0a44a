package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"cat-shelter/internal/platform/httpclient"
	"cat-shelter/internal/ports/auth"
)

var (
	ErrBadResponse = errors.New("auth service: invalid response")
)

const authorizePath = "/v1/sessions/authorize"

var _ auth.Authorizer = (*Client)(nil)

// Client habla con el servicio de autorización.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg httpclient.Config) (*Client, error) {
	hc, err := httpclient.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("auth client: %w", err)
	}
	return &Client{http: hc}, nil
}

type authorizeRequest struct {
	SessionID string `json:"session_id"`
}

type authorizeResponse struct {
	IsSuccess bool   `json:"is_success"`
	UserID    string `json:"user_id"`
}

// Authorize valida la sesión.
// 401/403 o is_success=false => Result{IsSuccess:false} sin error.
func (c *Client) Authorize(ctx context.Context, session string) (auth.Result, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return auth.Result{}, nil
	}

	var out authorizeResponse
	err := c.http.DoJSON(ctx, http.MethodPost, authorizePath,
		map[string]string{"Authorization": "Bearer " + session},
		authorizeRequest{SessionID: session}, &out)
	if err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return auth.Result{}, nil
		}
		return auth.Result{}, fmt.Errorf("auth service: %w", err)
	}

	if !out.IsSuccess {
		return auth.Result{}, nil
	}

	uid, err := uuid.Parse(strings.TrimSpace(out.UserID))
	if err != nil {
		return auth.Result{}, fmt.Errorf("%w: user_id %q", ErrBadResponse, out.UserID)
	}
	return auth.Result{IsSuccess: true, UserID: uid}, nil
}
