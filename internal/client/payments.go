// ABOUTME: Payment endpoints: intent creation and confirmation for approved requests

package client

import (
	"context"
	"net/url"
)

// CreatePaymentIntent starts payment for an approved request.
func (c *Client) CreatePaymentIntent(ctx context.Context, orderID string) (*PaymentIntent, error) {
	body := struct {
		OrderID string `json:"order_id"`
	}{OrderID: orderID}

	var intent PaymentIntent
	if err := c.do(ctx, "POST", "/payments/intent", nil, body, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// ConfirmPayment finalizes a payment intent.
func (c *Client) ConfirmPayment(ctx context.Context, intentID string) (*PaymentIntent, error) {
	var intent PaymentIntent
	if err := c.do(ctx, "POST", "/payments/"+url.PathEscape(intentID)+"/confirm", nil, nil, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}
