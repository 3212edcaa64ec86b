package materials

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chemstack/chemconsole/internal/apigateway"
)

// API is the backend surface for materials.
type API interface {
	List(ctx context.Context) ([]Material, error)
	Get(ctx context.Context, id int64) (Material, error)
	Create(ctx context.Context, input MaterialInput) error
	Update(ctx context.Context, id int64, input MaterialInput) error
	Delete(ctx context.Context, id int64) error
}

type Client struct {
	caller apigateway.Caller
}

func NewClient(caller apigateway.Caller) *Client {
	return &Client{caller: caller}
}

func (c *Client) List(ctx context.Context) ([]Material, error) {
	var out []Material
	if err := c.caller.Call(ctx, http.MethodGet, "/materials", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (Material, error) {
	var out Material
	if err := c.caller.Call(ctx, http.MethodGet, fmt.Sprintf("/materials/%d", id), nil, &out); err != nil {
		return Material{}, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, input MaterialInput) error {
	return c.caller.Call(ctx, http.MethodPost, "/materials", input, nil)
}

func (c *Client) Update(ctx context.Context, id int64, input MaterialInput) error {
	return c.caller.Call(ctx, http.MethodPut, fmt.Sprintf("/materials/%d", id), input, nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.caller.Call(ctx, http.MethodDelete, fmt.Sprintf("/materials/%d", id), nil, nil)
}
