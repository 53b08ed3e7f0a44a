package docstore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-shelter/internal/platform/sentinel"
)

type mapStore map[string][]byte

func (m mapStore) Find(_ context.Context, collection, key string) ([]byte, error) {
	raw, ok := m[collection+"/"+key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return raw, nil
}

func (m mapStore) Write(_ context.Context, collection, key string, body []byte) error {
	m[collection+"/"+key] = body
	return nil
}

type doc struct {
	Name string `json:"name"`
}

func TestCollection_WriteFind(t *testing.T) {
	store := mapStore{}
	c := NewCollection[doc](store, "Things")
	id := uuid.New()

	require.NoError(t, c.Write(context.Background(), id, doc{Name: "Tom"}))
	assert.JSONEq(t, `{"name":"Tom"}`, string(store["Things/"+id.String()]))

	got, err := c.Find(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Tom", got.Name)
	assert.Equal(t, "Things", c.Name())
}

func TestCollection_FindMissing(t *testing.T) {
	c := NewCollection[doc](mapStore{}, "Things")
	_, err := c.Find(context.Background(), uuid.New())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestCollection_FindCorrupt(t *testing.T) {
	id := uuid.New()
	store := mapStore{"Things/" + id.String(): []byte("{not json")}
	c := NewCollection[doc](store, "Things")

	_, err := c.Find(context.Background(), id)
	require.Error(t, err)
	assert.NotErrorIs(t, err, sentinel.ErrNotFound)
}
