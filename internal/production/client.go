package production

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chemstack/chemconsole/internal/apigateway"
)

// API is the backend surface for production records. There is deliberately
// no delete: production history is immutable.
type API interface {
	List(ctx context.Context) ([]ProductionRecord, error)
	Get(ctx context.Context, id int64) (ProductionDetail, error)
	Materials(ctx context.Context, id int64) ([]ProductionItem, error)
	Create(ctx context.Context, input ProductionInput) error
}

type Client struct {
	caller apigateway.Caller
}

func NewClient(caller apigateway.Caller) *Client {
	return &Client{caller: caller}
}

func (c *Client) List(ctx context.Context) ([]ProductionRecord, error) {
	var out []ProductionRecord
	if err := c.caller.Call(ctx, http.MethodGet, "/production_records", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (ProductionDetail, error) {
	var out ProductionDetail
	if err := c.caller.Call(ctx, http.MethodGet, fmt.Sprintf("/production_records/%d", id), nil, &out); err != nil {
		return ProductionDetail{}, err
	}
	return out, nil
}

func (c *Client) Materials(ctx context.Context, id int64) ([]ProductionItem, error) {
	var out []ProductionItem
	if err := c.caller.Call(ctx, http.MethodGet, fmt.Sprintf("/production_records/%d/materials", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, input ProductionInput) error {
	return c.caller.Call(ctx, http.MethodPost, "/production_records", input, nil)
}
