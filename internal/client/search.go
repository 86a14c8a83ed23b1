// ABOUTME: Catalog search endpoints: full query and typeahead suggestions

package client

import (
	"context"
	"net/url"
	"strconv"
)

// Search runs a catalog search for q, paged like a product listing.
func (c *Client) Search(ctx context.Context, q string, page, limit int) (*Paginated[Product], error) {
	query := url.Values{}
	query.Set("q", q)
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var result Paginated[Product]
	if err := c.do(ctx, "GET", "/search", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Suggestions returns typeahead completions for a partial query.
func (c *Client) Suggestions(ctx context.Context, q string) ([]string, error) {
	query := url.Values{}
	query.Set("q", q)

	var suggestions []string
	if err := c.do(ctx, "GET", "/search/suggestions", query, nil, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}
