package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"cat-shelter/internal/platform/httpclient"
	"cat-shelter/internal/platform/sentinel"
	"cat-shelter/internal/ports/breeds"
)

const breedsPath = "/v1/breeds"

var _ breeds.Service = (*Client)(nil)

type Client struct {
	http *httpclient.Client
}

func NewClient(cfg httpclient.Config) (*Client, error) {
	hc, err := httpclient.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("breeds client: %w", err)
	}
	return &Client{http: hc}, nil
}

// FindByName busca por nombre exacto; el servicio responde 404 si no existe.
func (c *Client) FindByName(ctx context.Context, name string) (breeds.Info, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return breeds.Info{}, fmt.Errorf("breeds find by name: empty name: %w", sentinel.ErrNotFound)
	}

	var out breeds.Info
	path := breedsPath + "?" + url.Values{"name": {name}}.Encode()
	if err := c.http.DoJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return breeds.Info{}, fmt.Errorf("breeds find by name %q: %w", name, err)
	}
	return out, nil
}

func (c *Client) FindByID(ctx context.Context, breedID uuid.UUID) (breeds.Info, error) {
	var out breeds.Info
	if err := c.http.DoJSON(ctx, http.MethodGet, breedsPath+"/"+breedID.String(), nil, nil, &out); err != nil {
		return breeds.Info{}, fmt.Errorf("breeds find by id %s: %w", breedID, err)
	}
	return out, nil
}
