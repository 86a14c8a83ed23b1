// ABOUTME: Parallel storefront bootstrap combining categories and featured products
// ABOUTME: Used by the TUI to paint its first screen with one round trip of latency

package client

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Storefront is the data needed to render the landing screen.
type Storefront struct {
	Categories []Category
	Featured   []Product
}

// LoadStorefront fetches categories and featured products concurrently.
// Either failure fails the whole load; partial screens are worse than a
// retryable error.
func (c *Client) LoadStorefront(ctx context.Context, featuredLimit int) (*Storefront, error) {
	var sf Storefront

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cats, err := c.Categories(ctx)
		if err != nil {
			return err
		}
		sf.Categories = cats
		return nil
	})
	g.Go(func() error {
		featured := true
		page, err := c.Products(ctx, ProductParams{IsFeatured: &featured, Limit: featuredLimit})
		if err != nil {
			return err
		}
		sf.Featured = page.Data
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &sf, nil
}
