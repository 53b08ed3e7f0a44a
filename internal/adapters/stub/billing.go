package stub

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cat-shelter/internal/platform/sentinel"
	"cat-shelter/internal/ports/billing"
)

const (
	OpListOffers = "list_offers"
	OpGetOffer   = "get_offer"
	OpAddOffer   = "add_offer"
	OpSell       = "sell"
)

var _ billing.Service = (*Billing)(nil)

// Billing mantiene el catálogo en orden de alta. Vender retira la oferta.
type Billing struct {
	spy

	mu     sync.RWMutex
	offers []billing.Offer
	bills  []billing.Bill
	now    func() time.Time
}

func NewBilling(offers ...billing.Offer) *Billing {
	return &Billing{
		offers: slices.Clone(offers),
		now:    time.Now,
	}
}

func (b *Billing) ListOffers(ctx context.Context, skip, limit int) ([]billing.Offer, error) {
	if err := b.enter(ctx, OpListOffers); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if skip < 0 {
		skip = 0
	}
	if skip >= len(b.offers) || limit <= 0 {
		return []billing.Offer{}, nil
	}
	end := min(skip+limit, len(b.offers))
	return slices.Clone(b.offers[skip:end]), nil
}

func (b *Billing) GetOffer(ctx context.Context, id uuid.UUID) (billing.Offer, error) {
	if err := b.enter(ctx, OpGetOffer); err != nil {
		return billing.Offer{}, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.offers {
		if o.ID == id {
			return o, nil
		}
	}
	return billing.Offer{}, fmt.Errorf("offer %s: %w", id, sentinel.ErrNotFound)
}

func (b *Billing) AddOffer(ctx context.Context, o billing.Offer) error {
	if err := b.enter(ctx, OpAddOffer); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.offers {
		if b.offers[i].ID == o.ID {
			b.offers[i] = o
			return nil
		}
	}
	b.offers = append(b.offers, o)
	return nil
}

func (b *Billing) Sell(ctx context.Context, id uuid.UUID, price decimal.Decimal) (billing.Bill, error) {
	if err := b.enter(ctx, OpSell); err != nil {
		return billing.Bill{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.offers = slices.DeleteFunc(b.offers, func(o billing.Offer) bool { return o.ID == id })

	bill := billing.Bill{
		ID:      uuid.New(),
		OfferID: id,
		Price:   price,
		SoldAt:  b.now().UTC(),
	}
	b.bills = append(b.bills, bill)
	return bill, nil
}

// Bills devuelve las ventas registradas.
func (b *Billing) Bills() []billing.Bill {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.bills)
}
