// ABOUTME: Coupon endpoints: listing and code validation

package client

import (
	"context"
	"net/url"
)

// Coupons lists the coupons available to the current user.
func (c *Client) Coupons(ctx context.Context) ([]Coupon, error) {
	var coupons []Coupon
	if err := c.do(ctx, "GET", "/coupons", nil, nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

// ValidateCoupon checks a coupon code against the current user's cartless
// request flow. An unknown code is a validation result, not an error.
func (c *Client) ValidateCoupon(ctx context.Context, code string) (*CouponValidation, error) {
	var result CouponValidation
	if err := c.do(ctx, "GET", "/coupons/validate/"+url.PathEscape(code), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
