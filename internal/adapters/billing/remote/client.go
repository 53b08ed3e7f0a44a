package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cat-shelter/internal/platform/httpclient"
	"cat-shelter/internal/ports/billing"
)

const productsPath = "/v1/products"

var _ billing.Service = (*Client)(nil)

// Client es el adapter HTTP del servicio de billing (catálogo de ofertas).
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg httpclient.Config) (*Client, error) {
	hc, err := httpclient.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("billing client: %w", err)
	}
	return &Client{http: hc}, nil
}

type listResponse struct {
	Items []billing.Offer `json:"items"`
}

type sellRequest struct {
	Price decimal.Decimal `json:"price"`
}

func (c *Client) ListOffers(ctx context.Context, skip, limit int) ([]billing.Offer, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var out listResponse
	if err := c.http.DoJSON(ctx, http.MethodGet, productsPath+"?"+q.Encode(), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("billing list offers: %w", err)
	}
	if out.Items == nil {
		return []billing.Offer{}, nil
	}
	return out.Items, nil
}

func (c *Client) GetOffer(ctx context.Context, id uuid.UUID) (billing.Offer, error) {
	var out billing.Offer
	if err := c.http.DoJSON(ctx, http.MethodGet, productsPath+"/"+id.String(), nil, nil, &out); err != nil {
		return billing.Offer{}, fmt.Errorf("billing get offer %s: %w", id, err)
	}
	return out, nil
}

func (c *Client) AddOffer(ctx context.Context, o billing.Offer) error {
	if err := c.http.DoJSON(ctx, http.MethodPost, productsPath, nil, o, nil); err != nil {
		return fmt.Errorf("billing add offer %s: %w", o.ID, err)
	}
	return nil
}

func (c *Client) Sell(ctx context.Context, id uuid.UUID, price decimal.Decimal) (billing.Bill, error) {
	var out billing.Bill
	path := productsPath + "/" + id.String() + "/sell"
	if err := c.http.DoJSON(ctx, http.MethodPost, path, nil, sellRequest{Price: price}, &out); err != nil {
		return billing.Bill{}, fmt.Errorf("billing sell %s: %w", id, err)
	}
	return out, nil
}
