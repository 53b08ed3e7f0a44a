package favorites

import (
	"slices"

	"github.com/google/uuid"
)

// Collection es la colección del document store de favoritos, clave = userID.
const Collection = "Favorites"

// UserFavorites es el set de favoritos de un usuario.
// FavoriteIDs no tiene duplicados y conserva el orden de alta.
type UserFavorites struct {
	UserID      uuid.UUID   `json:"user_id"`
	FavoriteIDs []uuid.UUID `json:"favorite_ids"`
}

func (f UserFavorites) Contains(catID uuid.UUID) bool {
	return slices.Contains(f.FavoriteIDs, catID)
}

// add es idempotente; devuelve false si ya estaba.
func (f *UserFavorites) add(catID uuid.UUID) bool {
	if f.Contains(catID) {
		return false
	}
	f.FavoriteIDs = append(f.FavoriteIDs, catID)
	return true
}

func (f *UserFavorites) remove(catID uuid.UUID) bool {
	i := slices.Index(f.FavoriteIDs, catID)
	if i < 0 {
		return false
	}
	f.FavoriteIDs = slices.Delete(f.FavoriteIDs, i, i+1)
	return true
}
