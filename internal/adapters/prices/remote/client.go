package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"cat-shelter/internal/platform/httpclient"
	"cat-shelter/internal/ports/prices"
)

var _ prices.Service = (*Client)(nil)

type Client struct {
	http *httpclient.Client
}

func NewClient(cfg httpclient.Config) (*Client, error) {
	hc, err := httpclient.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("prices client: %w", err)
	}
	return &Client{http: hc}, nil
}

type historyResponse struct {
	Prices prices.History `json:"prices"`
}

// GetHistory devuelve el historial; una raza sin precios responde lista vacía.
func (c *Client) GetHistory(ctx context.Context, breedID uuid.UUID) (prices.History, error) {
	var out historyResponse
	path := "/v1/breeds/" + breedID.String() + "/prices"
	if err := c.http.DoJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("prices history %s: %w", breedID, err)
	}
	if out.Prices == nil {
		return prices.History{}, nil
	}
	return out.Prices, nil
}
