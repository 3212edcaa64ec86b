package products

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chemstack/chemconsole/internal/apigateway"
)

type API interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, input ProductInput) error
	Update(ctx context.Context, id int64, input ProductInput) error
	Delete(ctx context.Context, id int64) error
}

type Client struct {
	caller apigateway.Caller
}

func NewClient(caller apigateway.Caller) *Client {
	return &Client{caller: caller}
}

func (c *Client) List(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.caller.Call(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (Product, error) {
	var out Product
	if err := c.caller.Call(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, input ProductInput) error {
	return c.caller.Call(ctx, http.MethodPost, "/products", input, nil)
}

func (c *Client) Update(ctx context.Context, id int64, input ProductInput) error {
	return c.caller.Call(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), input, nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.caller.Call(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}
