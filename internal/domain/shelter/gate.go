package shelter

import (
	"context"
	"errors"
	"fmt"

	"cat-shelter/internal/platform/depcall"
	"cat-shelter/internal/platform/logger"
	"cat-shelter/internal/platform/sentinel"
	"cat-shelter/internal/ports/auth"
)

// Gate es el primer paso obligatorio de toda operación.
type Gate struct {
	auth auth.Authorizer
	call depcall.Caller
	log  logger.Logger
}

func NewGate(a auth.Authorizer, call depcall.Caller, log logger.Logger) *Gate {
	return &Gate{auth: a, call: call, log: log}
}

// Authorize devuelve la identidad del llamador.
// Rechazo explícito o sesión desconocida (not-found) => sentinel.ErrAuthorization;
// inalcanzable => sentinel.ErrInternal.
func (g *Gate) Authorize(ctx context.Context, session string) (auth.Identity, error) {
	res, err := depcall.Lookup(ctx, g.call, "auth", "authorize", func(ctx context.Context) (auth.Result, error) {
		return g.auth.Authorize(ctx, session)
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		g.log.Warn("authorization denied: unknown session", nil)
		return auth.Identity{}, fmt.Errorf("%w: unknown session", sentinel.ErrAuthorization)
	}
	if err != nil {
		return auth.Identity{}, err
	}
	if !res.IsSuccess {
		g.log.Warn("authorization denied", nil)
		return auth.Identity{}, fmt.Errorf("%w: session rejected", sentinel.ErrAuthorization)
	}
	return auth.Identity{UserID: res.UserID}, nil
}
