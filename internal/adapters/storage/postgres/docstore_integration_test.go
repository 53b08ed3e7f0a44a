//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"cat-shelter/internal/adapters/storage/postgres"
	"cat-shelter/internal/platform/sentinel"
)

type DocStoreSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	store     *postgres.DocStore
}

func TestDocStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(DocStoreSuite))
}

func (s *DocStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("shelter"),
		tcpostgres.WithUsername("shelter"),
		tcpostgres.WithPassword("shelter"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := postgres.Open(dsn)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })

	s.store = postgres.NewDocStore(db)
	s.Require().NoError(s.store.EnsureSchema(ctx))
}

func (s *DocStoreSuite) TearDownSuite() {
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *DocStoreSuite) TestRoundTripAndUpsert() {
	ctx := context.Background()

	_, err := s.store.Find(ctx, "Favorites", "missing")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Write(ctx, "Favorites", "u1", []byte(`{"favorite_ids":["a"]}`)))
	s.Require().NoError(s.store.Write(ctx, "Favorites", "u1", []byte(`{"favorite_ids":["a","b"]}`)))

	got, err := s.store.Find(ctx, "Favorites", "u1")
	s.Require().NoError(err)
	s.JSONEq(`{"favorite_ids":["a","b"]}`, string(got))
}

func (s *DocStoreSuite) TestCollectionsAreIsolated() {
	ctx := context.Background()

	s.Require().NoError(s.store.Write(ctx, "CatEntities", "k1", []byte(`{"name":"Tom"}`)))
	_, err := s.store.Find(ctx, "Favorites", "k1")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
