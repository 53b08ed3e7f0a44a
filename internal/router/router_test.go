package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-shelter/internal/adapters/storage/memory"
	"cat-shelter/internal/adapters/stub"
	"cat-shelter/internal/ports/breeds"
	"cat-shelter/internal/router"
)

const session = "e2e-session"

type env struct {
	url   string
	stubs *stub.Set
	store *memory.DocStore
	user  uuid.UUID
}

func newEnv(t *testing.T) env {
	t.Helper()

	stubs := stub.NewSet()
	store := memory.NewDocStore()
	user := uuid.New()
	stubs.Auth.Allow(session, user)

	ts := httptest.NewServer(router.NewRouter(router.Options{Stubs: stubs, Store: store}))
	t.Cleanup(ts.Close)

	return env{url: ts.URL, stubs: stubs, store: store, user: user}
}

func TestHTTP_EndToEnd_ListForSaleSingleCat(t *testing.T) {
	e := newEnv(t)

	// Catálogo [{A, B1}], B1 = Siamese, sin historial de precios.
	b1 := uuid.New()
	catA := uuid.New()
	seed, err := stub.ParseSeed([]byte(`
breeds:
  - id: ` + b1.String() + `
    name: Siamese
cats:
  - id: ` + catA.String() + `
    breed: Siamese
    name: A
`))
	require.NoError(t, err)
	require.NoError(t, seed.Apply(t.Context(), e.stubs, e.store))

	st, body := doReq(t, e.url, http.MethodGet, "/cats", session, nil)
	require.Equal(t, http.StatusOK, st, string(body))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out, 1)

	assert.Equal(t, catA.String(), out[0]["id"])
	assert.Equal(t, "Siamese", out[0]["breed"])
	assert.Equal(t, "1000", out[0]["price"])
	assert.Equal(t, []any{}, out[0]["prices"])
}

func TestHTTP_EndToEnd_AddBuyAndFavorites(t *testing.T) {
	e := newEnv(t)
	e.stubs.Breeds.Put(breeds.Info{BreedID: uuid.New(), BreedName: "Maine Coon"})

	// 1) Alta de gato
	st, body := doReq(t, e.url, http.MethodPost, "/cats", session, map[string]any{
		"name":  "Milo",
		"breed": "Maine Coon",
		"photo": []byte("milo.png"),
	})
	require.Equal(t, http.StatusCreated, st, string(body))
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	_, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	// 2) Favorito (dos veces, idempotente)
	for range 2 {
		st, body = doReq(t, e.url, http.MethodPut, "/me/favorites/"+created.ID, session, nil)
		require.Equal(t, http.StatusNoContent, st, string(body))
	}

	st, body = doReq(t, e.url, http.MethodGet, "/me/favorites", session, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	var favs []map[string]any
	require.NoError(t, json.Unmarshal(body, &favs))
	require.Len(t, favs, 1)
	assert.Equal(t, "Milo", favs[0]["name"])
	assert.Equal(t, e.user.String(), favs[0]["added_by"])

	// 3) Compra
	st, body = doReq(t, e.url, http.MethodPost, "/cats/"+created.ID+"/buy", session, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	var bill map[string]any
	require.NoError(t, json.Unmarshal(body, &bill))
	assert.Equal(t, created.ID, bill["offer_id"])
	assert.Equal(t, "1000", bill["price"])

	// 4) Vendido: ya no aparece en favoritos ni se puede volver a comprar
	st, body = doReq(t, e.url, http.MethodGet, "/me/favorites", session, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	assert.JSONEq(t, "[]", string(body))

	st, _ = doReq(t, e.url, http.MethodPost, "/cats/"+created.ID+"/buy", session, nil)
	assert.Equal(t, http.StatusBadRequest, st)

	// 5) Quitar favorito
	st, _ = doReq(t, e.url, http.MethodDelete, "/me/favorites/"+created.ID, session, nil)
	assert.Equal(t, http.StatusNoContent, st)
}

func TestHTTP_Unauthorized(t *testing.T) {
	e := newEnv(t)

	for _, path := range []string{"/cats", "/me/favorites"} {
		st, _ := doReq(t, e.url, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, st, path)

		st, _ = doReq(t, e.url, http.MethodGet, path, "other-session", nil)
		assert.Equal(t, http.StatusUnauthorized, st, path)
	}

	assert.Equal(t, e.stubs.Auth.TotalCalls(), e.stubs.TotalCalls())
}

func TestHTTP_BadRequests(t *testing.T) {
	e := newEnv(t)

	st, _ := doReq(t, e.url, http.MethodPut, "/me/favorites/not-a-uuid", session, nil)
	assert.Equal(t, http.StatusBadRequest, st)

	st, _ = doReq(t, e.url, http.MethodGet, "/cats?skip=-3", session, nil)
	assert.Equal(t, http.StatusBadRequest, st)

	st, body := doReq(t, e.url, http.MethodPost, "/cats", session, map[string]any{"name": "x", "breed": "Unknown"})
	assert.Equal(t, http.StatusBadRequest, st, string(body))
}

func TestHTTP_MalformedInputWithoutSessionIs401(t *testing.T) {
	e := newEnv(t)

	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodPut, "/me/favorites/not-a-uuid", nil},
		{http.MethodDelete, "/me/favorites/not-a-uuid", nil},
		{http.MethodPost, "/cats/not-a-uuid/buy", nil},
		{http.MethodGet, "/cats?skip=-3", nil},
		{http.MethodPost, "/cats", "not an object"},
	}
	for _, tc := range cases {
		st, _ := doReq(t, e.url, tc.method, tc.path, "other-session", tc.body)
		assert.Equal(t, http.StatusUnauthorized, st, "%s %s", tc.method, tc.path)

		st, _ = doReq(t, e.url, tc.method, tc.path, session, tc.body)
		assert.Equal(t, http.StatusBadRequest, st, "%s %s", tc.method, tc.path)
	}

	assert.Equal(t, e.stubs.Auth.TotalCalls(), e.stubs.TotalCalls())
}

func TestHTTP_DependencyDownIs502(t *testing.T) {
	e := newEnv(t)
	e.stubs.Billing.FailNext(stub.OpListOffers, 2)

	st, _ := doReq(t, e.url, http.MethodGet, "/cats", session, nil)
	assert.Equal(t, http.StatusBadGateway, st)
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	e := newEnv(t)

	st, body := doReq(t, e.url, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", string(body))

	_, _ = doReq(t, e.url, http.MethodGet, "/cats", session, nil)

	st, body = doReq(t, e.url, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.True(t, strings.Contains(string(body), "cat_shelter_http_requests_total"))
	assert.True(t, strings.Contains(string(body), `dependency="auth"`))
}

func doReq(t *testing.T, baseURL, method, path, session string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set("Authorization", "Bearer "+session)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}
