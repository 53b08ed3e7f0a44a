package cats

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cat-shelter/internal/platform/depcall"
	"cat-shelter/internal/platform/logger"
	"cat-shelter/internal/platform/metrics"
	"cat-shelter/internal/platform/sentinel"
	"cat-shelter/internal/ports/breeds"
	"cat-shelter/internal/ports/prices"
)

var (
	// ErrMissingRecord: hay una oferta viva para un id sin CatRecord.
	ErrMissingRecord = errors.New("cat record missing")
	// ErrUnknownBreed: el record apunta a una raza que breeds no conoce.
	ErrUnknownBreed = errors.New("cat references unknown breed")
)

// Aggregator compone Cat a partir de record + raza + historial de precios.
type Aggregator struct {
	records *Records
	breeds  breeds.Service
	prices  prices.Service
	call    depcall.Caller
	log     logger.Logger
	metrics *metrics.Metrics
}

func NewAggregator(records *Records, b breeds.Service, p prices.Service, call depcall.Caller) *Aggregator {
	log := call.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Aggregator{
		records: records,
		breeds:  b,
		prices:  p,
		call:    call,
		log:     log,
		metrics: call.Metrics,
	}
}

// Build arma el Cat de id. Si no hay record devuelve (Cat{}, false, nil).
// Raza e historial se piden en paralelo.
func (a *Aggregator) Build(ctx context.Context, id uuid.UUID) (Cat, bool, error) {
	rec, ok, err := a.records.Get(ctx, id)
	if err != nil || !ok {
		return Cat{}, false, err
	}

	var (
		info    breeds.Info
		history prices.History
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := depcall.Lookup(gctx, a.call, "breeds", "find_by_id", func(ctx context.Context) (breeds.Info, error) {
			return a.breeds.FindByID(ctx, rec.BreedID)
		})
		if errors.Is(err, sentinel.ErrNotFound) {
			a.log.Error("cat references unknown breed", map[string]any{
				"cat_id":   id.String(),
				"breed_id": rec.BreedID.String(),
			})
			return fmt.Errorf("%w: %w: cat %s breed %s", sentinel.ErrInternal, ErrUnknownBreed, id, rec.BreedID)
		}
		info = v
		return err
	})
	g.Go(func() error {
		v, err := depcall.Call(gctx, a.call, "prices", "get_history", func(ctx context.Context) (prices.History, error) {
			return a.prices.GetHistory(ctx, rec.BreedID)
		})
		history = v
		return err
	})
	if err := g.Wait(); err != nil {
		// Si el padre se canceló, el error visible es la cancelación.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Cat{}, false, ctxErr
		}
		return Cat{}, false, err
	}

	if history == nil {
		history = prices.History{}
	}

	a.metrics.IncCatsAggregated()
	return Cat{
		ID:         rec.ID,
		BreedID:    rec.BreedID,
		AddedBy:    rec.AddedBy,
		Breed:      info.BreedName,
		Name:       rec.Name,
		CatPhoto:   rec.Photo,
		BreedPhoto: info.Photo,
		Price:      history.Current(),
		Prices:     history,
	}, true, nil
}

// BuildAll agrega ids respetando su orden, con a lo sumo concurrency en vuelo.
// Un id sin record es una inconsistencia: sentinel.ErrInternal.
func (a *Aggregator) BuildAll(ctx context.Context, ids []uuid.UUID, concurrency int) ([]Cat, error) {
	out := make([]Cat, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, id := range ids {
		g.Go(func() error {
			c, ok, err := a.Build(gctx, id)
			if err != nil {
				return err
			}
			if !ok {
				a.log.Error("offer without cat record", map[string]any{"cat_id": id.String()})
				return fmt.Errorf("%w: %w: %s", sentinel.ErrInternal, ErrMissingRecord, id)
			}
			out[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return out, nil
}
