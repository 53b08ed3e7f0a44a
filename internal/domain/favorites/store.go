package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"cat-shelter/internal/platform/depcall"
	"cat-shelter/internal/platform/sentinel"
	"cat-shelter/internal/ports/docstore"
)

const depDocstore = "docstore"

// Store es dueño de los documentos UserFavorites.
//
// Add/Remove son read-modify-write sin lock ni CAS: dos requests concurrentes
// del mismo usuario pueden pisarse (gana la última escritura).
type Store struct {
	col  docstore.Collection[UserFavorites]
	call depcall.Caller
}

func NewStore(store docstore.Store, call depcall.Caller) *Store {
	return &Store{
		col:  docstore.NewCollection[UserFavorites](store, Collection),
		call: call,
	}
}

// Get devuelve el set del usuario; vacío si nunca guardó nada.
func (s *Store) Get(ctx context.Context, userID uuid.UUID) (UserFavorites, error) {
	f, _, err := s.load(ctx, userID)
	return f, err
}

// Add crea el documento si no existe e inserta catID. No valida que el gato exista.
func (s *Store) Add(ctx context.Context, userID, catID uuid.UUID) error {
	f, _, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	f.add(catID)
	return s.save(ctx, f)
}

// Remove quita catID; si no estaba (o no hay documento) no escribe nada.
func (s *Store) Remove(ctx context.Context, userID, catID uuid.UUID) error {
	f, found, err := s.load(ctx, userID)
	if err != nil || !found {
		return err
	}
	if !f.remove(catID) {
		return nil
	}
	return s.save(ctx, f)
}

func (s *Store) load(ctx context.Context, userID uuid.UUID) (UserFavorites, bool, error) {
	f, err := depcall.Lookup(ctx, s.call, depDocstore, "find_favorites", func(ctx context.Context) (UserFavorites, error) {
		return s.col.Find(ctx, userID)
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return UserFavorites{UserID: userID, FavoriteIDs: []uuid.UUID{}}, false, nil
	}
	if err != nil {
		return UserFavorites{}, false, err
	}

	f.UserID = userID
	if f.FavoriteIDs == nil {
		f.FavoriteIDs = []uuid.UUID{}
	}
	return f, true, nil
}

func (s *Store) save(ctx context.Context, f UserFavorites) error {
	return depcall.Exec(ctx, s.call, depDocstore, "write_favorites", func(ctx context.Context) error {
		return s.col.Write(ctx, f.UserID, f)
	})
}
