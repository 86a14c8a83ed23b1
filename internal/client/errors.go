// ABOUTME: Normalized error type for all storefront API failures
// ABOUTME: Derives a single message and classifier flags from the backend's error dialects

package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error codes the backend is known to emit with user-ready messages.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountDeactivated = "ACCOUNT_DEACTIVATED"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeUnknownError       = "UNKNOWN_ERROR"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is the one error type every request can fail with. Status 0 means
// the request never produced an HTTP response (connection or DNS failure).
type APIError struct {
	Message string
	Status  int
	Body    []byte // raw response body, empty for transport failures

	body  errorBody
	cause error
}

func (e *APIError) Error() string { return e.Message }

// Unwrap exposes the underlying transport error, if any.
func (e *APIError) Unwrap() error { return e.cause }

// Code returns the backend error code, or UNKNOWN_ERROR when the body did
// not carry one.
func (e *APIError) Code() string {
	if e.body.Err != nil && e.body.Err.Code != "" {
		return e.body.Err.Code
	}
	return CodeUnknownError
}

// IsTransport reports a network-level failure with no HTTP response.
func (e *APIError) IsTransport() bool { return e.Status == 0 }

// IsValidation reports a validation failure (422 or VALIDATION_ERROR code).
func (e *APIError) IsValidation() bool {
	return e.Status == 422 || e.Code() == CodeValidationError
}

func (e *APIError) IsUnauthorized() bool { return e.Status == 401 }
func (e *APIError) IsForbidden() bool    { return e.Status == 403 }
func (e *APIError) IsNotFound() bool     { return e.Status == 404 }
func (e *APIError) IsConflict() bool     { return e.Status == 409 }

// ValidationErrors extracts field-level failures from either a FastAPI-style
// detail array or a custom error.details array. First matching shape wins.
func (e *APIError) ValidationErrors() []FieldError {
	if items := e.body.detailItems(); len(items) > 0 {
		out := make([]FieldError, 0, len(items))
		for _, it := range items {
			out = append(out, FieldError{Field: locPath(it.Loc), Message: it.message()})
		}
		return out
	}
	if e.body.Err != nil && len(e.body.Err.Details) > 0 {
		out := make([]FieldError, 0, len(e.body.Err.Details))
		for _, d := range e.body.Err.Details {
			out = append(out, FieldError{Field: d.Field, Message: d.message()})
		}
		return out
	}
	return nil
}

// errorBody covers every error shape the backend is known to return:
// FastAPI {"detail": string | [{"msg","loc"}]}, custom {"error": {"code",
// "message", "details"}}, and plain {"message"} / {"detail"} bodies.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Err     *errorInfo      `json:"error"`
}

type errorInfo struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []errorDetail `json:"details"`
}

type errorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Msg     string `json:"msg"`
	Loc     []any  `json:"loc"`
}

func (d errorDetail) message() string {
	if d.Message != "" {
		return d.Message
	}
	return d.Msg
}

// detailItems returns the FastAPI validation array, or nil when detail is
// absent or a plain string.
func (b errorBody) detailItems() []errorDetail {
	if len(b.Detail) == 0 {
		return nil
	}
	var items []errorDetail
	if err := json.Unmarshal(b.Detail, &items); err != nil {
		return nil
	}
	return items
}

// detailString returns detail when it is a plain string.
func (b errorBody) detailString() string {
	if len(b.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.Detail, &s); err != nil {
		return ""
	}
	return s
}

// newAPIError builds an APIError from a non-2xx response. A body that is not
// valid JSON is treated as empty rather than a failure of its own.
func newAPIError(status int, statusText string, raw []byte) *APIError {
	var body errorBody
	// Non-JSON error pages fall back to the generic HTTP message.
	_ = json.Unmarshal(raw, &body)

	return &APIError{
		Message: deriveMessage(status, statusText, body),
		Status:  status,
		Body:    raw,
		body:    body,
	}
}

// transportError wraps a failure that produced no HTTP response at all.
func transportError(err error) *APIError {
	return &APIError{
		Message: err.Error(),
		Status:  0,
		cause:   err,
	}
}

// deriveMessage picks the single human-readable message for an error
// response. Precedence: FastAPI 422 detail array, 422 detail string, custom
// error.details, error.message, top-level message, detail string, then the
// generic HTTP status line.
func deriveMessage(status int, statusText string, body errorBody) string {
	generic := fmt.Sprintf("HTTP %d: %s", status, statusText)

	if status == 422 {
		if items := body.detailItems(); len(items) > 0 {
			if msg := items[0].Msg; msg != "" {
				return msg
			}
			return "Validation error: " + locPath(items[0].Loc)
		}
		if s := body.detailString(); s != "" {
			return s
		}
	}

	if body.Err != nil {
		if len(body.Err.Details) > 0 {
			if msg := body.Err.Details[0].message(); msg != "" {
				return msg
			}
			field := body.Err.Details[0].Field
			if field == "" {
				field = "unknown field"
			}
			return "Validation error: " + field
		}
		if body.Err.Message != "" {
			return body.Err.Message
		}
		return generic
	}

	if body.Message != "" {
		return body.Message
	}
	if s := body.detailString(); s != "" {
		return s
	}
	return generic
}

// locPath renders a FastAPI location array like ["body","email"] as
// "body.email".
func locPath(loc []any) string {
	if len(loc) == 0 {
		return "unknown field"
	}
	parts := make([]string, 0, len(loc))
	for _, l := range loc {
		parts = append(parts, fmt.Sprint(l))
	}
	return strings.Join(parts, ".")
}
