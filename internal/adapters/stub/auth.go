package stub

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"cat-shelter/internal/ports/auth"
)

const OpAuthorize = "authorize"

var _ auth.Authorizer = (*Authorizer)(nil)

// Authorizer acepta solo las sesiones registradas con Allow.
type Authorizer struct {
	spy

	mu       sync.RWMutex
	sessions map[string]uuid.UUID
}

func NewAuthorizer() *Authorizer {
	return &Authorizer{sessions: map[string]uuid.UUID{}}
}

func (a *Authorizer) Allow(session string, userID uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions[strings.TrimSpace(session)] = userID
}

func (a *Authorizer) Revoke(session string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, strings.TrimSpace(session))
}

func (a *Authorizer) Authorize(ctx context.Context, session string) (auth.Result, error) {
	if err := a.enter(ctx, OpAuthorize); err != nil {
		return auth.Result{}, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	uid, ok := a.sessions[strings.TrimSpace(session)]
	if !ok {
		return auth.Result{}, nil
	}
	return auth.Result{IsSuccess: true, UserID: uid}, nil
}
