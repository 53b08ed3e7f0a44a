package stub

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"cat-shelter/internal/ports/prices"
)

const OpGetHistory = "get_history"

var _ prices.Service = (*Prices)(nil)

// Prices devuelve historial vacío para razas sin datos.
type Prices struct {
	spy

	mu      sync.RWMutex
	history map[uuid.UUID]prices.History
}

func NewPrices() *Prices {
	return &Prices{history: map[uuid.UUID]prices.History{}}
}

func (p *Prices) Set(breedID uuid.UUID, h prices.History) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history[breedID] = slices.Clone(h)
}

func (p *Prices) GetHistory(ctx context.Context, breedID uuid.UUID) (prices.History, error) {
	if err := p.enter(ctx, OpGetHistory); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	h := p.history[breedID]
	if h == nil {
		return prices.History{}, nil
	}
	return slices.Clone(h), nil
}
