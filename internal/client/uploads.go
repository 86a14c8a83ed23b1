// ABOUTME: Generic file upload endpoint, keyed by purpose

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
)

// Upload purposes accepted by the backend.
const (
	UploadPurposeProduct = "product"
	UploadPurposeReview  = "review"
	UploadPurposeAvatar  = "avatar"
)

// Upload sends a file for the given purpose and returns its served URL.
func (c *Client) Upload(ctx context.Context, purpose string, file FileUpload) (*UploadResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("purpose", purpose); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	part, err := w.CreateFormFile("file", file.Filename)
	if err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, fmt.Errorf("reading upload %s: %w", file.Filename, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}

	var resp UploadResponse
	if err := c.send(ctx, "POST", "/uploads", nil, &buf, w.FormDataContentType(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
