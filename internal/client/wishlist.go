// ABOUTME: Wishlist endpoints: fetch, add, and remove saved products

package client

import (
	"context"
	"net/url"
)

// Wishlist returns the current user's saved products.
func (c *Client) Wishlist(ctx context.Context) ([]WishlistItem, error) {
	var items []WishlistItem
	if err := c.do(ctx, "GET", "/wishlist", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToWishlist saves a product for the current user.
func (c *Client) AddToWishlist(ctx context.Context, productID string) error {
	body := struct {
		ProductID string `json:"product_id"`
	}{ProductID: productID}
	return c.do(ctx, "POST", "/wishlist", nil, body, nil)
}

// RemoveFromWishlist removes a saved product.
func (c *Client) RemoveFromWishlist(ctx context.Context, productID string) error {
	return c.do(ctx, "DELETE", "/wishlist/"+url.PathEscape(productID), nil, nil, nil)
}
