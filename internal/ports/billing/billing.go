package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Offer es una entrada del catálogo: el gato está a la venta.
type Offer struct {
	ID      uuid.UUID `json:"id"`
	BreedID uuid.UUID `json:"breed_id"`
}

// Bill es el comprobante que devuelve el servicio de billing al vender.
type Bill struct {
	ID      uuid.UUID       `json:"id"`
	OfferID uuid.UUID       `json:"offer_id"`
	Price   decimal.Decimal `json:"price"`
	SoldAt  time.Time       `json:"sold_at"`
}

// Service es el contrato del servicio de billing/catálogo.
//
// GetOffer devuelve sentinel.ErrNotFound si el gato no está a la venta.
// Cualquier método puede devolver sentinel.ErrUnavailable.
type Service interface {
	ListOffers(ctx context.Context, skip, limit int) ([]Offer, error)
	GetOffer(ctx context.Context, id uuid.UUID) (Offer, error)
	AddOffer(ctx context.Context, o Offer) error
	Sell(ctx context.Context, id uuid.UUID, price decimal.Decimal) (Bill, error)
}
