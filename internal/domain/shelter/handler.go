package shelter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"cat-shelter/internal/middleware"
	"cat-shelter/internal/platform/sentinel"
)

const (
	defaultLimit = 20
	maxLimit     = 100

	// Código no estándar (nginx) para requests que el cliente abandonó.
	statusClientClosedRequest = 499
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/cats", func(cr chi.Router) {
		cr.Get("/", listForSaleHandler(svc))
		cr.Post("/", addCatHandler(svc))
		cr.Post("/{catID}/buy", buyCatHandler(svc))
	})

	r.Route("/me/favorites", func(fr chi.Router) {
		fr.Get("/", listFavoritesHandler(svc))
		fr.Put("/{catID}", addFavoriteHandler(svc))
		fr.Delete("/{catID}", removeFavoriteHandler(svc))
	})
}

type addCatRequest struct {
	Name  string `json:"name"`
	Breed string `json:"breed"`
	Photo []byte `json:"photo"` // base64
}

type addCatResponse struct {
	ID string `json:"id"`
}

// listForSaleHandler godoc
// @Summary      Lista gatos a la venta
// @Description  Página del catálogo de billing, cada oferta compuesta como Cat (raza, fotos, precio vigente e historial).
// @Tags         cats
// @Produce      json
// @Param        Authorization  header  string  true  "Bearer <session>"
// @Param        skip   query  int  false  "Offset (default 0)"
// @Param        limit  query  int  false  "Tamaño de página (default 20, máx 100)"
// @Success      200  {array}   cats.Cat
// @Failure      400  {string}  string  "invalid request"
// @Failure      401  {string}  string  "unauthorized"
// @Failure      502  {string}  string  "upstream failure"
// @Router       /cats [get]
func listForSaleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, limit, err := parsePaging(r)
		if err != nil {
			rejectInvalid(w, r, svc, err.Error())
			return
		}

		items, err := svc.ListForSale(r.Context(), middleware.GetSession(r.Context()), skip, limit)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// addCatHandler godoc
// @Summary      Publica un gato
// @Description  Crea el record del gato a nombre del llamador y lo publica en el catálogo.
// @Tags         cats
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Bearer <session>"
// @Param        body  body      addCatRequest  true  "Gato (photo en base64)"
// @Success      201   {object}  addCatResponse
// @Failure      400   {string}  string  "invalid json / unknown breed"
// @Failure      401   {string}  string  "unauthorized"
// @Failure      502   {string}  string  "upstream failure"
// @Router       /cats [post]
func addCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addCatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			rejectInvalid(w, r, svc, "invalid json")
			return
		}

		id, err := svc.AddCat(r.Context(), middleware.GetSession(r.Context()), AddCatInput{
			Name:  req.Name,
			Breed: req.Breed,
			Photo: req.Photo,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, addCatResponse{ID: id.String()})
	}
}

// buyCatHandler godoc
// @Summary      Compra un gato
// @Description  Vende el gato al precio vigente de su raza (1000 si no hay historial). Devuelve el comprobante de billing.
// @Tags         cats
// @Produce      json
// @Param        Authorization  header  string  true  "Bearer <session>"
// @Param        catID  path      string  true  "Cat ID (uuid)"
// @Success      200    {object}  billing.Bill
// @Failure      400    {string}  string  "not for sale / invalid id"
// @Failure      401    {string}  string  "unauthorized"
// @Failure      502    {string}  string  "upstream failure"
// @Router       /cats/{catID}/buy [post]
func buyCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catID, ok := catIDParam(w, r, svc)
		if !ok {
			return
		}

		bill, err := svc.BuyCat(r.Context(), middleware.GetSession(r.Context()), catID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, bill)
	}
}

// listFavoritesHandler godoc
// @Summary      Lista mis favoritos
// @Description  Solo los favoritos que siguen a la venta, en orden de alta.
// @Tags         favorites
// @Produce      json
// @Param        Authorization  header  string  true  "Bearer <session>"
// @Success      200  {array}   cats.Cat
// @Failure      401  {string}  string  "unauthorized"
// @Failure      502  {string}  string  "upstream failure"
// @Router       /me/favorites [get]
func listFavoritesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListFavorites(r.Context(), middleware.GetSession(r.Context()))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// addFavoriteHandler godoc
// @Summary      Agrega un favorito
// @Description  Idempotente. No valida que el gato exista.
// @Tags         favorites
// @Param        Authorization  header  string  true  "Bearer <session>"
// @Param        catID  path  string  true  "Cat ID (uuid)"
// @Success      204
// @Failure      400  {string}  string  "invalid id"
// @Failure      401  {string}  string  "unauthorized"
// @Failure      502  {string}  string  "upstream failure"
// @Router       /me/favorites/{catID} [put]
func addFavoriteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catID, ok := catIDParam(w, r, svc)
		if !ok {
			return
		}
		if err := svc.AddFavorite(r.Context(), middleware.GetSession(r.Context()), catID); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// removeFavoriteHandler godoc
// @Summary      Quita un favorito
// @Description  Si no estaba, no hace nada.
// @Tags         favorites
// @Param        Authorization  header  string  true  "Bearer <session>"
// @Param        catID  path  string  true  "Cat ID (uuid)"
// @Success      204
// @Failure      400  {string}  string  "invalid id"
// @Failure      401  {string}  string  "unauthorized"
// @Failure      502  {string}  string  "upstream failure"
// @Router       /me/favorites/{catID} [delete]
func removeFavoriteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catID, ok := catIDParam(w, r, svc)
		if !ok {
			return
		}
		if err := svc.RemoveFavorite(r.Context(), middleware.GetSession(r.Context()), catID); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parsePaging(r *http.Request) (skip, limit int, err error) {
	q := r.URL.Query()

	skip = 0
	if v := strings.TrimSpace(q.Get("skip")); v != "" {
		skip, err = strconv.Atoi(v)
		if err != nil || skip < 0 {
			return 0, 0, errors.New("skip must be a non-negative integer")
		}
	}

	limit = defaultLimit
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New("limit must be an integer")
		}
	}
	limit = min(max(limit, 1), maxLimit)

	return skip, limit, nil
}

func catIDParam(w http.ResponseWriter, r *http.Request, svc *Service) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "catID")))
	if err != nil {
		rejectInvalid(w, r, svc, "catID must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}

// rejectInvalid responde a un request mal formado. El gate corre primero:
// una sesión inválida es 401 aunque el input también lo sea.
func rejectInvalid(w http.ResponseWriter, r *http.Request, svc *Service, msg string) {
	if _, err := svc.Authorize(r.Context(), middleware.GetSession(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	http.Error(w, msg, http.StatusBadRequest)
}

// writeError traduce los tipos de error del facade a HTTP.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sentinel.ErrAuthorization):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, sentinel.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "upstream timeout", http.StatusGatewayTimeout)
	case errors.Is(err, context.Canceled) || r.Context().Err() != nil:
		w.WriteHeader(statusClientClosedRequest)
	default:
		http.Error(w, "upstream failure", http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
