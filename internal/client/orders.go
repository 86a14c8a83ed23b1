// ABOUTME: Order (request) endpoints for the request-before-purchase flow

package client

import (
	"context"
	"net/url"
	"strconv"
)

// OrderParams pages and filters an order listing.
type OrderParams struct {
	Page   int
	Limit  int
	Status string
}

func (p OrderParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	return q
}

// CreateOrder submits a new item request.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var order Order
	if err := c.do(ctx, "POST", "/orders", nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Orders lists the current user's requests.
func (c *Client) Orders(ctx context.Context, params OrderParams) (*Paginated[Order], error) {
	var page Paginated[Order]
	if err := c.do(ctx, "GET", "/orders", params.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Order fetches a single request by ID.
func (c *Client) Order(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := c.do(ctx, "GET", "/orders/"+url.PathEscape(id), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
