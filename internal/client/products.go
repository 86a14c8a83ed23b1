// ABOUTME: Catalog endpoints: product listing, lookup, and categories
// ABOUTME: Wrappers only build paths and query strings, request does the rest

package client

import (
	"context"
	"net/url"
	"strconv"
)

// ProductParams filters and pages a product listing. Zero values are
// omitted from the query string.
type ProductParams struct {
	Page       int
	Limit      int
	Category   string
	Search     string
	IsFeatured *bool
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
}

func (p ProductParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.IsFeatured != nil {
		q.Set("is_featured", strconv.FormatBool(*p.IsFeatured))
	}
	if p.MinPrice != nil {
		q.Set("min_price", strconv.FormatFloat(*p.MinPrice, 'f', -1, 64))
	}
	if p.MaxPrice != nil {
		q.Set("max_price", strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	return q
}

// Products lists catalog items matching params.
func (c *Client) Products(ctx context.Context, params ProductParams) (*Paginated[Product], error) {
	var page Paginated[Product]
	if err := c.do(ctx, "GET", "/products", params.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Product fetches a single catalog item by ID.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var p Product
	if err := c.do(ctx, "GET", "/products/"+url.PathEscape(id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProductBySlug fetches a single catalog item by its URL slug.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	var p Product
	if err := c.do(ctx, "GET", "/products/slug/"+url.PathEscape(slug), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Categories lists the catalog categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var cats []Category
	if err := c.do(ctx, "GET", "/products/categories", nil, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}
