package depcall

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cat-shelter/internal/platform/logger"
	"cat-shelter/internal/platform/metrics"
	"cat-shelter/internal/platform/retry"
	"cat-shelter/internal/platform/sentinel"
)

// Caller agrupa la política de reintentos y la observabilidad de las llamadas
// a dependencias. El valor cero es usable: 2 intentos, sin logs ni métricas.
type Caller struct {
	Attempts int
	Log      logger.Logger
	Metrics  *metrics.Metrics
}

// Call ejecuta op bajo la retry.Policy, registrando cada intento.
// El error resultante es cancelación o sentinel.ErrInternal; un not-found de la
// dependencia también es ErrInternal.
// dependency es la etiqueta de métricas (auth, billing, breeds, prices, docstore)
// y op el nombre de la operación para los logs.
func Call[T any](ctx context.Context, c Caller, dependency, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := do(ctx, c, dependency, op, fn)
	return v, internal(err, false)
}

// Lookup es Call para búsquedas donde la ausencia es un resultado:
// sentinel.ErrNotFound llega tal cual al llamador.
func Lookup[T any](ctx context.Context, c Caller, dependency, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := do(ctx, c, dependency, op, fn)
	return v, internal(err, true)
}

func do[T any](ctx context.Context, c Caller, dependency, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	log := c.Log
	if log == nil {
		log = logger.Nop()
	}

	p := retry.Policy{
		Attempts: c.Attempts,
		OnRetry: func(attempt int, err error) {
			c.Metrics.IncRetry(dependency)
			log.Warn("dependency call failed, retrying", map[string]any{
				"dependency": dependency,
				"op":         op,
				"attempt":    attempt,
				"err":        err.Error(),
			})
		},
		OnExhausted: func(err error) {
			log.Error("dependency unreachable, giving up", map[string]any{
				"dependency": dependency,
				"op":         op,
				"err":        err.Error(),
			})
		},
	}

	return retry.Do(ctx, p, func(ctx context.Context) (T, error) {
		start := time.Now()
		v, err := fn(ctx)
		c.Metrics.ObserveCall(dependency, outcome(err), time.Since(start))
		return v, err
	})
}

// internal deja pasar cancelación (y not-found si allowNotFound); cualquier otra
// falla de una dependencia es sentinel.ErrInternal para el facade. La causa sigue en la cadena.
func internal(err error, allowNotFound bool) error {
	switch {
	case err == nil,
		allowNotFound && errors.Is(err, sentinel.ErrNotFound),
		errors.Is(err, sentinel.ErrInternal),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: %w", sentinel.ErrInternal, err)
}

// Exec es Call para operaciones sin resultado.
func Exec(ctx context.Context, c Caller, dependency, op string, fn func(ctx context.Context) error) error {
	_, err := Call(ctx, c, dependency, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, sentinel.ErrNotFound):
		return metrics.OutcomeNotFound
	case sentinel.IsTransient(err):
		return metrics.OutcomeTransient
	default:
		return metrics.OutcomeError
	}
}
