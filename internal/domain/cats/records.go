package cats

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"cat-shelter/internal/platform/depcall"
	"cat-shelter/internal/platform/sentinel"
	"cat-shelter/internal/ports/docstore"
)

const depDocstore = "docstore"

// Records es el acceso a la colección CatEntities.
type Records struct {
	col  docstore.Collection[Record]
	call depcall.Caller
}

func NewRecords(store docstore.Store, call depcall.Caller) *Records {
	return &Records{
		col:  docstore.NewCollection[Record](store, Collection),
		call: call,
	}
}

// Get devuelve (Record, false, nil) si el gato no tiene record.
func (r *Records) Get(ctx context.Context, id uuid.UUID) (Record, bool, error) {
	rec, err := depcall.Lookup(ctx, r.call, depDocstore, "find_cat", func(ctx context.Context) (Record, error) {
		return r.col.Find(ctx, id)
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

func (r *Records) Put(ctx context.Context, rec Record) error {
	return depcall.Exec(ctx, r.call, depDocstore, "write_cat", func(ctx context.Context) error {
		return r.col.Write(ctx, rec.ID, rec)
	})
}
