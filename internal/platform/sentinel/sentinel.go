package sentinel

import "errors"

// Errores de infraestructura: los adapters los devuelven (envueltos con %w)
// para que los servicios puedan clasificarlos sin conocer el transporte.
//
// - ErrNotFound: el recurso no existe en la dependencia.
// - ErrUnavailable: falla transitoria de conectividad; es lo único que se reintenta.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("dependency unavailable")
)

// Errores que el facade expone a sus clientes.
//
// La cancelación no tiene sentinel propio: se propaga ctx.Err()
// (context.Canceled o context.DeadlineExceeded).
var (
	ErrAuthorization  = errors.New("authorization failed")
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternal       = errors.New("internal error")
)

// IsTransient indica si err es una falla de conectividad reintentable.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
