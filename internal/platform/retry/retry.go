package retry

import (
	"context"
	"fmt"

	"cat-shelter/internal/platform/sentinel"
)

// DefaultAttempts es el presupuesto fijo de intentos (incluye el primero).
const DefaultAttempts = 2

// Policy reintenta solo fallas transitorias (sentinel.ErrUnavailable).
// No mide tiempo: los timeouts son responsabilidad de cada llamada.
type Policy struct {
	Attempts int

	// OnRetry se invoca antes de cada reintento con el intento que falló (1-based).
	OnRetry func(attempt int, err error)
	// OnExhausted se invoca una vez cuando se agotan los intentos.
	OnExhausted func(err error)
}

// WithAttempts devuelve una Policy sin hooks con el presupuesto indicado.
func WithAttempts(n int) Policy {
	return Policy{Attempts: n}
}

func (p Policy) attempts() int {
	if p.Attempts <= 0 {
		return DefaultAttempts
	}
	return p.Attempts
}

// Do ejecuta op hasta p.Attempts veces mientras falle con un error transitorio.
//
//   - éxito: devuelve el valor.
//   - error no transitorio: se propaga tal cual en el primer intento.
//   - intentos agotados: sentinel.ErrInternal (la causa no se envuelve).
//   - ctx cancelado: ctx.Err(), nunca ErrInternal.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	max := p.attempts()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		if !sentinel.IsTransient(err) {
			return zero, err
		}

		if attempt >= max {
			if p.OnExhausted != nil {
				p.OnExhausted(err)
			}
			return zero, fmt.Errorf("%w: gave up after %d attempts: %v", sentinel.ErrInternal, max, err)
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}
	}
}

// Exec es Do para operaciones sin resultado (writes).
func Exec(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	_, err := Do(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
