package prices

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Point struct {
	Date  time.Time       `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// History es cronológica; vacía es un resultado válido.
type History []Point

// FallbackPrice es el precio de una raza sin historial.
var FallbackPrice = decimal.NewFromInt(1000)

// Current devuelve el precio del punto más reciente, o FallbackPrice si no hay puntos.
// Ante fechas iguales gana el último en la secuencia.
func (h History) Current() decimal.Decimal {
	if len(h) == 0 {
		return FallbackPrice
	}
	latest := h[0]
	for _, p := range h[1:] {
		if !p.Date.Before(latest.Date) {
			latest = p
		}
	}
	return latest.Price
}

// Service entrega el historial de precios de una raza.
type Service interface {
	GetHistory(ctx context.Context, breedID uuid.UUID) (History, error)
}
