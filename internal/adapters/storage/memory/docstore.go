package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cat-shelter/internal/platform/sentinel"
	"cat-shelter/internal/ports/docstore"
)

var _ docstore.Store = (*DocStore)(nil)

// DocStore es el document store in-memory (modo dev / tests).
type DocStore struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte
}

func NewDocStore() *DocStore {
	return &DocStore{
		docs: make(map[string]map[string][]byte),
	}
}

func (s *DocStore) Find(ctx context.Context, collection, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.docs[collection][key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(raw), nil
}

func (s *DocStore) Write(ctx context.Context, collection, key string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(collection) == "" || strings.TrimSpace(key) == "" {
		return errors.New("collection and key required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.docs[collection]
	if !ok {
		c = make(map[string][]byte)
		s.docs[collection] = c
	}
	c[key] = clone(body)
	return nil
}

// Keys lista las claves de una colección en orden estable (solo para inspección en dev/tests).
func (s *DocStore) Keys(collection string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.docs[collection]))
	for k := range s.docs[collection] {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
