package sales

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chemstack/chemconsole/internal/apigateway"
)

type API interface {
	List(ctx context.Context) ([]SaleRecord, error)
	Get(ctx context.Context, id int64) (SaleDetail, error)
	Products(ctx context.Context, id int64) ([]SaleItem, error)
	Create(ctx context.Context, input SaleInput) error
	Delete(ctx context.Context, id int64) error
}

type Client struct {
	caller apigateway.Caller
}

func NewClient(caller apigateway.Caller) *Client {
	return &Client{caller: caller}
}

func (c *Client) List(ctx context.Context) ([]SaleRecord, error) {
	var out []SaleRecord
	if err := c.caller.Call(ctx, http.MethodGet, "/sale_records", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (SaleDetail, error) {
	var out SaleDetail
	if err := c.caller.Call(ctx, http.MethodGet, fmt.Sprintf("/sale_records/%d", id), nil, &out); err != nil {
		return SaleDetail{}, err
	}
	return out, nil
}

func (c *Client) Products(ctx context.Context, id int64) ([]SaleItem, error) {
	var out []SaleItem
	if err := c.caller.Call(ctx, http.MethodGet, fmt.Sprintf("/sale_records/%d/products", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, input SaleInput) error {
	return c.caller.Call(ctx, http.MethodPost, "/sale_records", input, nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.caller.Call(ctx, http.MethodDelete, fmt.Sprintf("/sale_records/%d", id), nil, nil)
}
