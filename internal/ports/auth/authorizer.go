package auth

import "context"

// Authorizer intercambia un session token opaco por un Result.
// Fallas de conectividad => sentinel.ErrUnavailable.
type Authorizer interface {
	Authorize(ctx context.Context, session string) (Result, error)
}
