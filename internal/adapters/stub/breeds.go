package stub

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"cat-shelter/internal/platform/sentinel"
	"cat-shelter/internal/ports/breeds"
)

const (
	OpFindByName = "find_by_name"
	OpFindByID   = "find_by_id"
)

var _ breeds.Service = (*Breeds)(nil)

// Breeds indexa por id y por nombre (case-insensitive).
type Breeds struct {
	spy

	mu     sync.RWMutex
	byID   map[uuid.UUID]breeds.Info
	byName map[string]uuid.UUID
}

func NewBreeds(items ...breeds.Info) *Breeds {
	b := &Breeds{
		byID:   map[uuid.UUID]breeds.Info{},
		byName: map[string]uuid.UUID{},
	}
	for _, it := range items {
		b.Put(it)
	}
	return b
}

func (b *Breeds) Put(info breeds.Info) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.byID[info.BreedID] = info
	b.byName[strings.ToLower(strings.TrimSpace(info.BreedName))] = info.BreedID
}

func (b *Breeds) FindByName(ctx context.Context, name string) (breeds.Info, error) {
	if err := b.enter(ctx, OpFindByName); err != nil {
		return breeds.Info{}, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	id, ok := b.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return breeds.Info{}, fmt.Errorf("breed %q: %w", name, sentinel.ErrNotFound)
	}
	return b.byID[id], nil
}

func (b *Breeds) FindByID(ctx context.Context, breedID uuid.UUID) (breeds.Info, error) {
	if err := b.enter(ctx, OpFindByID); err != nil {
		return breeds.Info{}, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	info, ok := b.byID[breedID]
	if !ok {
		return breeds.Info{}, fmt.Errorf("breed %s: %w", breedID, sentinel.ErrNotFound)
	}
	return info, nil
}
