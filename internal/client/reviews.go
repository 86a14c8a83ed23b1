// ABOUTME: Review endpoints: listing and multipart creation with images

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"
)

// ReviewInput is the payload for posting a product review.
type ReviewInput struct {
	Rating  int
	Comment string
	Images  []FileUpload
}

// FileUpload is a named file attachment for multipart endpoints.
type FileUpload struct {
	Filename string
	Content  io.Reader
}

// Reviews lists reviews for a product.
func (c *Client) Reviews(ctx context.Context, productID string, page, limit int) (*Paginated[Review], error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var result Paginated[Review]
	if err := c.do(ctx, "GET", "/products/"+url.PathEscape(productID)+"/reviews", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateReview posts a review as a multipart form so images can ride along.
// The multipart writer supplies its own Content-Type with boundary.
func (c *Client) CreateReview(ctx context.Context, productID string, input ReviewInput) (*Review, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("rating", strconv.Itoa(input.Rating)); err != nil {
		return nil, fmt.Errorf("building review form: %w", err)
	}
	if err := w.WriteField("comment", input.Comment); err != nil {
		return nil, fmt.Errorf("building review form: %w", err)
	}
	for _, img := range input.Images {
		part, err := w.CreateFormFile("images", img.Filename)
		if err != nil {
			return nil, fmt.Errorf("building review form: %w", err)
		}
		if _, err := io.Copy(part, img.Content); err != nil {
			return nil, fmt.Errorf("reading review image %s: %w", img.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("building review form: %w", err)
	}

	var review Review
	path := "/products/" + url.PathEscape(productID) + "/reviews"
	if err := c.send(ctx, "POST", path, nil, &buf, w.FormDataContentType(), nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
