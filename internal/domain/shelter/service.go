package shelter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cat-shelter/internal/domain/cats"
	"cat-shelter/internal/domain/favorites"
	"cat-shelter/internal/platform/depcall"
	"cat-shelter/internal/platform/logger"
	"cat-shelter/internal/platform/metrics"
	"cat-shelter/internal/platform/retry"
	"cat-shelter/internal/platform/sentinel"
	"cat-shelter/internal/ports/auth"
	"cat-shelter/internal/ports/billing"
	"cat-shelter/internal/ports/breeds"
	"cat-shelter/internal/ports/docstore"
	"cat-shelter/internal/ports/prices"
)

const (
	DefaultConcurrency = 8

	depBilling = "billing"
	depBreeds  = "breeds"
	depPrices  = "prices"
)

// Deps son los colaboradores externos del shelter.
type Deps struct {
	Auth    auth.Authorizer
	Billing billing.Service
	Breeds  breeds.Service
	Prices  prices.Service
	Store   docstore.Store
}

type Options struct {
	// Attempts por llamada a dependencia; 0 => retry.DefaultAttempts.
	Attempts int
	// Concurrency máxima de agregaciones/lookups dentro de un listado.
	Concurrency int

	Logger  logger.Logger
	Metrics *metrics.Metrics
}

type Service struct {
	gate       *Gate
	billing    billing.Service
	breeds     breeds.Service
	prices     prices.Service
	records    *cats.Records
	aggregator *cats.Aggregator
	favorites  *favorites.Store

	call        depcall.Caller
	concurrency int
	log         logger.Logger
}

func NewService(d Deps, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = retry.DefaultAttempts
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	call := depcall.Caller{Attempts: attempts, Log: log, Metrics: opts.Metrics}
	records := cats.NewRecords(d.Store, call)

	return &Service{
		gate:        NewGate(d.Auth, call, log),
		billing:     d.Billing,
		breeds:      d.Breeds,
		prices:      d.Prices,
		records:     records,
		aggregator:  cats.NewAggregator(records, d.Breeds, d.Prices, call),
		favorites:   favorites.NewStore(d.Store, call),
		call:        call,
		concurrency: concurrency,
		log:         log,
	}
}

// Authorize expone el gate para quien necesite autenticar sin ejecutar una operación.
func (s *Service) Authorize(ctx context.Context, session string) (auth.Identity, error) {
	return s.gate.Authorize(ctx, session)
}

// ListForSale devuelve la página [skip, skip+limit) del catálogo como Cats,
// en el orden del catálogo. skip y limit llegan a billing sin validar.
func (s *Service) ListForSale(ctx context.Context, session string, skip, limit int) ([]cats.Cat, error) {
	if _, err := s.gate.Authorize(ctx, session); err != nil {
		return nil, err
	}

	offers, err := depcall.Call(ctx, s.call, depBilling, "list_offers", func(ctx context.Context) ([]billing.Offer, error) {
		return s.billing.ListOffers(ctx, skip, limit)
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(offers))
	for i, o := range offers {
		ids[i] = o.ID
	}
	return s.aggregator.BuildAll(ctx, ids, min(s.concurrency, max(len(ids), 1)))
}

// AddFavorite no verifica que el gato exista.
func (s *Service) AddFavorite(ctx context.Context, session string, catID uuid.UUID) error {
	id, err := s.gate.Authorize(ctx, session)
	if err != nil {
		return err
	}
	return s.favorites.Add(ctx, id.UserID, catID)
}

// ListFavorites devuelve solo los favoritos que siguen a la venta, en orden de alta.
// Los que ya no tienen oferta se omiten pero quedan guardados.
func (s *Service) ListFavorites(ctx context.Context, session string) ([]cats.Cat, error) {
	id, err := s.gate.Authorize(ctx, session)
	if err != nil {
		return nil, err
	}

	fav, err := s.favorites.Get(ctx, id.UserID)
	if err != nil {
		return nil, err
	}

	listed, err := s.stillListed(ctx, fav.FavoriteIDs)
	if err != nil {
		return nil, err
	}
	return s.aggregator.BuildAll(ctx, listed, s.concurrency)
}

// stillListed filtra ids con oferta vigente, conservando el orden.
func (s *Service) stillListed(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	listed := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, catID := range ids {
		g.Go(func() error {
			_, err := s.getOffer(gctx, catID)
			switch {
			case err == nil:
				listed[i] = true
				return nil
			case errors.Is(err, sentinel.ErrNotFound):
				return nil
			default:
				return err
			}
		})
	}
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	out := make([]uuid.UUID, 0, len(ids))
	for i, ok := range listed {
		if ok {
			out = append(out, ids[i])
		}
	}
	return out, nil
}

func (s *Service) RemoveFavorite(ctx context.Context, session string, catID uuid.UUID) error {
	id, err := s.gate.Authorize(ctx, session)
	if err != nil {
		return err
	}
	return s.favorites.Remove(ctx, id.UserID, catID)
}

// BuyCat vende el gato al precio vigente de su raza y devuelve el Bill de billing tal cual.
func (s *Service) BuyCat(ctx context.Context, session string, catID uuid.UUID) (billing.Bill, error) {
	id, err := s.gate.Authorize(ctx, session)
	if err != nil {
		return billing.Bill{}, err
	}

	offer, err := s.getOffer(ctx, catID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return billing.Bill{}, fmt.Errorf("%w: cat %s is not for sale", sentinel.ErrInvalidRequest, catID)
	}
	if err != nil {
		return billing.Bill{}, err
	}

	history, err := depcall.Call(ctx, s.call, depPrices, "get_history", func(ctx context.Context) (prices.History, error) {
		return s.prices.GetHistory(ctx, offer.BreedID)
	})
	if err != nil {
		return billing.Bill{}, err
	}
	price := history.Current()

	bill, err := depcall.Call(ctx, s.call, depBilling, "sell", func(ctx context.Context) (billing.Bill, error) {
		return s.billing.Sell(ctx, catID, price)
	})
	if err != nil {
		return billing.Bill{}, err
	}

	s.log.Info("cat sold", map[string]any{
		"cat_id":  catID.String(),
		"user_id": id.UserID.String(),
		"price":   price.String(),
	})
	return bill, nil
}

type AddCatInput struct {
	Name  string
	Breed string
	Photo []byte
}

// AddCat publica un gato nuevo del llamador: oferta en billing y record en el store.
// Si falla la escritura del record, la oferta queda publicada (no hay rollback).
func (s *Service) AddCat(ctx context.Context, session string, in AddCatInput) (uuid.UUID, error) {
	id, err := s.gate.Authorize(ctx, session)
	if err != nil {
		return uuid.Nil, err
	}

	name := strings.TrimSpace(in.Name)
	breedName := strings.TrimSpace(in.Breed)
	if name == "" || breedName == "" {
		return uuid.Nil, fmt.Errorf("%w: name and breed are required", sentinel.ErrInvalidRequest)
	}

	info, err := depcall.Lookup(ctx, s.call, depBreeds, "find_by_name", func(ctx context.Context) (breeds.Info, error) {
		return s.breeds.FindByName(ctx, breedName)
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return uuid.Nil, fmt.Errorf("%w: unknown breed %q", sentinel.ErrInvalidRequest, breedName)
	}
	if err != nil {
		return uuid.Nil, err
	}

	photo := in.Photo
	if photo == nil {
		photo = []byte{}
	}
	rec := cats.Record{
		ID:      uuid.New(),
		BreedID: info.BreedID,
		AddedBy: id.UserID,
		Name:    name,
		Photo:   photo,
	}

	offer := billing.Offer{ID: rec.ID, BreedID: rec.BreedID}
	if err := depcall.Exec(ctx, s.call, depBilling, "add_offer", func(ctx context.Context) error {
		return s.billing.AddOffer(ctx, offer)
	}); err != nil {
		return uuid.Nil, err
	}

	if err := s.records.Put(ctx, rec); err != nil {
		s.log.Error("offer published without cat record", map[string]any{
			"cat_id": rec.ID.String(),
			"err":    err.Error(),
		})
		return uuid.Nil, err
	}

	s.log.Info("cat added", map[string]any{
		"cat_id":  rec.ID.String(),
		"breed":   info.BreedName,
		"user_id": id.UserID.String(),
	})
	return rec.ID, nil
}

func (s *Service) getOffer(ctx context.Context, catID uuid.UUID) (billing.Offer, error) {
	return depcall.Lookup(ctx, s.call, depBilling, "get_offer", func(ctx context.Context) (billing.Offer, error) {
		return s.billing.GetOffer(ctx, catID)
	})
}
