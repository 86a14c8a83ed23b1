// ABOUTME: Admin endpoints: product CRUD, request triage, admin-access approvals
// ABOUTME: All of these require an admin-scoped bearer token

package client

import (
	"context"
	"net/url"
)

// ProductInput is the admin payload for creating or updating a product.
type ProductInput struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency,omitempty"`
	Category    string   `json:"category"`
	Images      []string `json:"images,omitempty"`
	IsFeatured  bool     `json:"is_featured"`
	InStock     bool     `json:"in_stock"`
}

// AdminRequestInput is the payload for requesting admin dashboard access.
type AdminRequestInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Reason string `json:"reason,omitempty"`
}

// CreateProduct adds a catalog item.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var p Product
	if err := c.do(ctx, "POST", "/admin/products", nil, input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct replaces a catalog item.
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (*Product, error) {
	var p Product
	if err := c.do(ctx, "PUT", "/admin/products/"+url.PathEscape(id), nil, input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct removes a catalog item.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/admin/products/"+url.PathEscape(id), nil, nil, nil)
}

// PendingRequests lists customer requests awaiting triage.
func (c *Client) PendingRequests(ctx context.Context, params OrderParams) (*Paginated[Order], error) {
	var page Paginated[Order]
	if err := c.do(ctx, "GET", "/admin/requests", params.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdateRequestStatus transitions a customer request (approve, reject, ship).
func (c *Client) UpdateRequestStatus(ctx context.Context, orderID, status, note string) (*Order, error) {
	body := struct {
		Status string `json:"status"`
		Note   string `json:"note,omitempty"`
	}{Status: status, Note: note}

	var order Order
	if err := c.do(ctx, "PUT", "/admin/requests/"+url.PathEscape(orderID)+"/status", nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateAdminRequest submits an application for admin dashboard access.
func (c *Client) CreateAdminRequest(ctx context.Context, input AdminRequestInput) (*AdminRequest, error) {
	var req AdminRequest
	if err := c.do(ctx, "POST", "/admin/access-requests", nil, input, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// AdminRequests lists admin-access applications.
func (c *Client) AdminRequests(ctx context.Context, params OrderParams) (*Paginated[AdminRequest], error) {
	var page Paginated[AdminRequest]
	if err := c.do(ctx, "GET", "/admin/access-requests", params.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ApproveAdminRequest grants an admin-access application.
func (c *Client) ApproveAdminRequest(ctx context.Context, id string) (*AdminRequest, error) {
	var req AdminRequest
	if err := c.do(ctx, "POST", "/admin/access-requests/"+url.PathEscape(id)+"/approve", nil, nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// RejectAdminRequest declines an admin-access application.
func (c *Client) RejectAdminRequest(ctx context.Context, id, reason string) (*AdminRequest, error) {
	body := struct {
		Reason string `json:"reason,omitempty"`
	}{Reason: reason}

	var req AdminRequest
	if err := c.do(ctx, "POST", "/admin/access-requests/"+url.PathEscape(id)+"/reject", nil, body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
