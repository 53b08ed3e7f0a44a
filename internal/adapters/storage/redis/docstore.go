package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/redis/go-redis/v9"

	"cat-shelter/internal/platform/sentinel"
	"cat-shelter/internal/ports/docstore"
)

var _ docstore.Store = (*DocStore)(nil)

const keyPrefix = "doc:"

// DocStore guarda cada documento como un string JSON bajo doc:<collection>:<key>.
type DocStore struct {
	client *redis.Client
}

func NewDocStore(client *redis.Client) *DocStore {
	return &DocStore{client: client}
}

func docKey(collection, key string) string {
	return keyPrefix + collection + ":" + key
}

func (s *DocStore) Find(ctx context.Context, collection, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, docKey(collection, key)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("redis: find %s/%s: %w", collection, key, classify(err))
	}
	return raw, nil
}

func (s *DocStore) Write(ctx context.Context, collection, key string, body []byte) error {
	if err := s.client.Set(ctx, docKey(collection, key), body, 0).Err(); err != nil {
		return fmt.Errorf("redis: write %s/%s: %w", collection, key, classify(err))
	}
	return nil
}

func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.Nil):
		return sentinel.ErrNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, redis.ErrClosed), errors.Is(err, redis.ErrPoolTimeout),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return err
}
