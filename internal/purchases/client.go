package purchases

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chemstack/chemconsole/internal/apigateway"
)

type API interface {
	List(ctx context.Context) ([]PurchaseRecord, error)
	Get(ctx context.Context, id int64) (PurchaseDetail, error)
	Materials(ctx context.Context, id int64) ([]PurchaseItem, error)
	Create(ctx context.Context, input PurchaseInput) error
	Delete(ctx context.Context, id int64) error
}

type Client struct {
	caller apigateway.Caller
}

func NewClient(caller apigateway.Caller) *Client {
	return &Client{caller: caller}
}

func (c *Client) List(ctx context.Context) ([]PurchaseRecord, error) {
	var out []PurchaseRecord
	if err := c.caller.Call(ctx, http.MethodGet, "/purchase_records", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (PurchaseDetail, error) {
	var out PurchaseDetail
	if err := c.caller.Call(ctx, http.MethodGet, fmt.Sprintf("/purchase_records/%d", id), nil, &out); err != nil {
		return PurchaseDetail{}, err
	}
	return out, nil
}

func (c *Client) Materials(ctx context.Context, id int64) ([]PurchaseItem, error) {
	var out []PurchaseItem
	if err := c.caller.Call(ctx, http.MethodGet, fmt.Sprintf("/purchase_records/%d/materials", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, input PurchaseInput) error {
	return c.caller.Call(ctx, http.MethodPost, "/purchase_records", input, nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.caller.Call(ctx, http.MethodDelete, fmt.Sprintf("/purchase_records/%d", id), nil, nil)
}
