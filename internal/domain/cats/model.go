package cats

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cat-shelter/internal/ports/prices"
)

// Collection es la colección del document store donde viven los CatRecord.
const Collection = "CatEntities"

// Record es lo que el shelter persiste de un gato. Lo crea AddCat y nunca se borra.
type Record struct {
	ID      uuid.UUID `json:"id"`
	BreedID uuid.UUID `json:"breed_id"`
	AddedBy uuid.UUID `json:"added_by"`
	Name    string    `json:"name"`
	Photo   []byte    `json:"photo"`
}

// Cat es la vista compuesta que se arma en cada lectura (no se cachea).
// Price es el precio del último punto de Prices, o prices.FallbackPrice si está vacío.
type Cat struct {
	ID         uuid.UUID       `json:"id"`
	BreedID    uuid.UUID       `json:"breed_id"`
	AddedBy    uuid.UUID       `json:"added_by"`
	Breed      string          `json:"breed"`
	Name       string          `json:"name"`
	CatPhoto   []byte          `json:"cat_photo"`
	BreedPhoto []byte          `json:"breed_photo"`
	Price      decimal.Decimal `json:"price"`
	Prices     prices.History  `json:"prices"`
}
