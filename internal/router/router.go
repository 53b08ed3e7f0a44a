package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "cat-shelter/docs"
	mem "cat-shelter/internal/adapters/storage/memory"
	"cat-shelter/internal/adapters/stub"
	"cat-shelter/internal/domain/shelter"
	"cat-shelter/internal/middleware"
	"cat-shelter/internal/platform/logger"
	"cat-shelter/internal/platform/metrics"
	"cat-shelter/internal/ports/auth"
	"cat-shelter/internal/ports/billing"
	"cat-shelter/internal/ports/breeds"
	"cat-shelter/internal/ports/docstore"
	"cat-shelter/internal/ports/prices"
)

type Options struct {
	// Dependencias remotas; las que vengan nil se sirven desde Stubs (modo dev).
	Auth    auth.Authorizer
	Billing billing.Service
	Breeds  breeds.Service
	Prices  prices.Service

	// Opcional: si viene nil, se usa un document store in-memory.
	Store docstore.Store

	// Stubs para las dependencias faltantes; si es nil se crea uno vacío.
	Stubs *stub.Set

	Attempts    int
	Concurrency int

	Logger  logger.Logger
	Metrics *metrics.Metrics
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log, m))
	r.Use(middleware.Session)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	svc := shelter.NewService(resolveDeps(opts, log), shelter.Options{
		Attempts:    opts.Attempts,
		Concurrency: opts.Concurrency,
		Logger:      log,
		Metrics:     m,
	})
	shelter.RegisterRoutes(r, svc)

	return r
}

// resolveDeps completa con stubs lo que no vino configurado.
func resolveDeps(opts Options, log logger.Logger) shelter.Deps {
	stubs := opts.Stubs
	if stubs == nil {
		stubs = stub.NewSet()
	}

	d := shelter.Deps{
		Auth:    opts.Auth,
		Billing: opts.Billing,
		Breeds:  opts.Breeds,
		Prices:  opts.Prices,
		Store:   opts.Store,
	}

	var stubbed []string
	if d.Auth == nil {
		d.Auth = stubs.Auth
		stubbed = append(stubbed, "auth")
	}
	if d.Billing == nil {
		d.Billing = stubs.Billing
		stubbed = append(stubbed, "billing")
	}
	if d.Breeds == nil {
		d.Breeds = stubs.Breeds
		stubbed = append(stubbed, "breeds")
	}
	if d.Prices == nil {
		d.Prices = stubs.Prices
		stubbed = append(stubbed, "prices")
	}
	if d.Store == nil {
		d.Store = mem.NewDocStore()
		stubbed = append(stubbed, "docstore")
	}

	if len(stubbed) > 0 {
		log.Warn("dev mode: in-process dependencies", map[string]any{"deps": stubbed})
	}
	return d
}
