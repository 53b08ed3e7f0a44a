package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	authremote "cat-shelter/internal/adapters/auth/remote"
	billingremote "cat-shelter/internal/adapters/billing/remote"
	breedsremote "cat-shelter/internal/adapters/breeds/remote"
	pricesremote "cat-shelter/internal/adapters/prices/remote"
	mem "cat-shelter/internal/adapters/storage/memory"
	pg "cat-shelter/internal/adapters/storage/postgres"
	rdb "cat-shelter/internal/adapters/storage/redis"
	"cat-shelter/internal/adapters/storage/sqlite"
	"cat-shelter/internal/adapters/stub"
	"cat-shelter/internal/platform/config"
	"cat-shelter/internal/platform/httpclient"
	"cat-shelter/internal/platform/logger"
	"cat-shelter/internal/platform/metrics"
	"cat-shelter/internal/ports/docstore"
	"cat-shelter/internal/router"
)

// buildOptions arma las opciones del router desde la config.
// El closer libera conexiones del document store.
func buildOptions(ctx context.Context, cfg config.Config, log logger.Logger) (router.Options, func() error, error) {
	opts := router.Options{
		Attempts:    cfg.Retry.Attempts,
		Concurrency: cfg.Aggregate.Concurrency,
		Logger:      log,
		Metrics:     metrics.New(),
		Stubs:       stub.NewSet(),
	}

	if err := buildRemotes(cfg.Services, &opts); err != nil {
		return router.Options{}, nil, err
	}

	store, closer, err := openStore(ctx, cfg.Store)
	if err != nil {
		return router.Options{}, nil, err
	}
	opts.Store = store

	if path := cfg.Stub.SeedFile; path != "" {
		seed, err := stub.LoadSeed(path)
		if err != nil {
			_ = closer()
			return router.Options{}, nil, err
		}
		if err := seed.Apply(ctx, opts.Stubs, store); err != nil {
			_ = closer()
			return router.Options{}, nil, fmt.Errorf("apply seed %s: %w", path, err)
		}
		log.Info("stub seed loaded", map[string]any{
			"file":     path,
			"sessions": len(seed.Sessions),
			"breeds":   len(seed.Breeds),
			"cats":     len(seed.Cats),
		})
	}

	return opts, closer, nil
}

func clientConfig(s config.ServiceConfig) httpclient.Config {
	return httpclient.Config{BaseURL: s.BaseURL, APIKey: s.APIKey, Timeout: s.Timeout}
}

func buildRemotes(s config.ServicesConfig, opts *router.Options) error {
	var errs []error

	if s.Auth.Remote() {
		c, err := authremote.NewClient(clientConfig(s.Auth))
		errs = append(errs, err)
		opts.Auth = c
	}
	if s.Billing.Remote() {
		c, err := billingremote.NewClient(clientConfig(s.Billing))
		errs = append(errs, err)
		opts.Billing = c
	}
	if s.Breeds.Remote() {
		c, err := breedsremote.NewClient(clientConfig(s.Breeds))
		errs = append(errs, err)
		opts.Breeds = c
	}
	if s.Prices.Remote() {
		c, err := pricesremote.NewClient(clientConfig(s.Prices))
		errs = append(errs, err)
		opts.Prices = c
	}

	return errors.Join(errs...)
}

func openStore(ctx context.Context, cfg config.StoreConfig) (docstore.Store, func() error, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := pg.Open(cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		s := pg.NewDocStore(db)
		return withSchema(ctx, db, s.EnsureSchema, s)

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		s := sqlite.NewDocStore(db)
		return withSchema(ctx, db, s.EnsureSchema, s)

	case config.DriverRedis:
		client, err := rdb.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis: %w", err)
		}
		return rdb.NewDocStore(client), client.Close, nil

	default:
		return mem.NewDocStore(), func() error { return nil }, nil
	}
}

func withSchema(ctx context.Context, db *sql.DB, ensure func(context.Context) error, s docstore.Store) (docstore.Store, func() error, error) {
	if err := ensure(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, db.Close, nil
}
