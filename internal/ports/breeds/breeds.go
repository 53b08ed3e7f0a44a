package breeds

import (
	"context"

	"github.com/google/uuid"
)

// Info es la data descriptiva de una raza.
type Info struct {
	BreedID   uuid.UUID `json:"breed_id"`
	BreedName string    `json:"breed_name"`
	Photo     []byte    `json:"photo"`
}

// Service busca razas; sentinel.ErrNotFound si no existe.
type Service interface {
	FindByName(ctx context.Context, name string) (Info, error)
	FindByID(ctx context.Context, breedID uuid.UUID) (Info, error)
}
