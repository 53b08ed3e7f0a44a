package auth

import "github.com/google/uuid"

// Result es la respuesta del servicio de autorización.
// IsSuccess=false es un rechazo explícito (no una falla de transporte).
type Result struct {
	IsSuccess bool
	UserID    uuid.UUID
}

// Identity es el llamador autenticado; vive solo durante el request.
type Identity struct {
	UserID uuid.UUID
}
