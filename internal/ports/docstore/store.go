package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Store es el document store genérico: documentos JSON por (collection, key).
//
// Find devuelve sentinel.ErrNotFound si no existe.
// Write reemplaza el documento completo (last-write-wins, sin CAS).
// Fallas de conectividad => sentinel.ErrUnavailable.
type Store interface {
	Find(ctx context.Context, collection, key string) ([]byte, error)
	Write(ctx context.Context, collection, key string, body []byte) error
}

// Collection es una vista tipada de una colección con claves UUID.
type Collection[T any] struct {
	store Store
	name  string
}

func NewCollection[T any](store Store, name string) Collection[T] {
	return Collection[T]{store: store, name: name}
}

func (c Collection[T]) Name() string { return c.name }

func (c Collection[T]) Find(ctx context.Context, id uuid.UUID) (T, error) {
	var doc T
	raw, err := c.store.Find(ctx, c.name, id.String())
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("docstore: decode %s/%s: %w", c.name, id, err)
	}
	return doc, nil
}

func (c Collection[T]) Write(ctx context.Context, id uuid.UUID, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("docstore: encode %s/%s: %w", c.name, id, err)
	}
	return c.store.Write(ctx, c.name, id.String(), raw)
}
