package stub

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"cat-shelter/internal/domain/cats"
	"cat-shelter/internal/ports/billing"
	"cat-shelter/internal/ports/breeds"
	"cat-shelter/internal/ports/docstore"
	"cat-shelter/internal/ports/prices"
)

// Seed es el fixture YAML del modo dev.
//
//	sessions:
//	  - session: dev-token
//	    user_id: 6f1c...
//	breeds:
//	  - id: 2b7e...
//	    name: Siamese
//	    photo: <base64>
//	    prices:
//	      - {date: "2024-01-01", price: "700"}
//	cats:
//	  - id: 9a0d...
//	    breed: Siamese
//	    name: Tom
//	    added_by: 6f1c...
type Seed struct {
	Sessions []SeedSession `yaml:"sessions"`
	Breeds   []SeedBreed   `yaml:"breeds"`
	Cats     []SeedCat     `yaml:"cats"`
}

type SeedSession struct {
	Session string `yaml:"session"`
	UserID  string `yaml:"user_id"`
}

type SeedBreed struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Photo  string      `yaml:"photo"`
	Prices []SeedPrice `yaml:"prices"`
}

type SeedPrice struct {
	Date  string `yaml:"date"`
	Price string `yaml:"price"`
}

// SeedCat se publica como oferta en billing y como record en el document store.
type SeedCat struct {
	ID      string `yaml:"id"`
	Breed   string `yaml:"breed"`
	Name    string `yaml:"name"`
	AddedBy string `yaml:"added_by"`
	Photo   string `yaml:"photo"`
}

func LoadSeed(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	return s, nil
}

// Apply carga el seed en los stubs y escribe los CatRecord en store.
func (s Seed) Apply(ctx context.Context, set *Set, store docstore.Store) error {
	for i, ss := range s.Sessions {
		uid, err := uuid.Parse(strings.TrimSpace(ss.UserID))
		if err != nil {
			return fmt.Errorf("sessions[%d].user_id: %w", i, err)
		}
		if strings.TrimSpace(ss.Session) == "" {
			return fmt.Errorf("sessions[%d].session: empty", i)
		}
		set.Auth.Allow(ss.Session, uid)
	}

	byName := map[string]uuid.UUID{}
	for i, sb := range s.Breeds {
		info, history, err := sb.parse()
		if err != nil {
			return fmt.Errorf("breeds[%d]: %w", i, err)
		}
		set.Breeds.Put(info)
		set.Prices.Set(info.BreedID, history)
		byName[strings.ToLower(info.BreedName)] = info.BreedID
	}

	records := docstore.NewCollection[cats.Record](store, cats.Collection)
	for i, sc := range s.Cats {
		rec, err := sc.parse(byName)
		if err != nil {
			return fmt.Errorf("cats[%d]: %w", i, err)
		}
		if err := set.Billing.AddOffer(ctx, billing.Offer{ID: rec.ID, BreedID: rec.BreedID}); err != nil {
			return fmt.Errorf("cats[%d]: add offer: %w", i, err)
		}
		if err := records.Write(ctx, rec.ID, rec); err != nil {
			return fmt.Errorf("cats[%d]: write record: %w", i, err)
		}
	}

	// El seed no cuenta como tráfico.
	set.ResetCalls()
	return nil
}

func (sb SeedBreed) parse() (breeds.Info, prices.History, error) {
	id, err := parseOrNewUUID(sb.ID)
	if err != nil {
		return breeds.Info{}, nil, fmt.Errorf("id: %w", err)
	}
	name := strings.TrimSpace(sb.Name)
	if name == "" {
		return breeds.Info{}, nil, errors.New("name: empty")
	}
	photo, err := decodePhoto(sb.Photo)
	if err != nil {
		return breeds.Info{}, nil, fmt.Errorf("photo: %w", err)
	}

	history := make(prices.History, 0, len(sb.Prices))
	for j, p := range sb.Prices {
		d, err := parseDate(p.Date)
		if err != nil {
			return breeds.Info{}, nil, fmt.Errorf("prices[%d].date: %w", j, err)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(p.Price))
		if err != nil {
			return breeds.Info{}, nil, fmt.Errorf("prices[%d].price: %w", j, err)
		}
		history = append(history, prices.Point{Date: d, Price: amount})
	}

	return breeds.Info{BreedID: id, BreedName: name, Photo: photo}, history, nil
}

func (sc SeedCat) parse(breedsByName map[string]uuid.UUID) (cats.Record, error) {
	id, err := parseOrNewUUID(sc.ID)
	if err != nil {
		return cats.Record{}, fmt.Errorf("id: %w", err)
	}
	breedID, ok := breedsByName[strings.ToLower(strings.TrimSpace(sc.Breed))]
	if !ok {
		return cats.Record{}, fmt.Errorf("breed %q not declared in breeds", sc.Breed)
	}
	addedBy, err := parseOrNewUUID(sc.AddedBy)
	if err != nil {
		return cats.Record{}, fmt.Errorf("added_by: %w", err)
	}
	photo, err := decodePhoto(sc.Photo)
	if err != nil {
		return cats.Record{}, fmt.Errorf("photo: %w", err)
	}
	return cats.Record{
		ID:      id,
		BreedID: breedID,
		AddedBy: addedBy,
		Name:    strings.TrimSpace(sc.Name),
		Photo:   photo,
	}, nil
}

func parseOrNewUUID(s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.New(), nil
	}
	return uuid.Parse(s)
}

func decodePhoto(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []byte{}, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
