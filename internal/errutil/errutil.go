// ABOUTME: Maps API and transport errors to user-facing copy and retry policy
// ABOUTME: The only place error objects are turned into display strings

package errutil

import (
	"errors"
	"net"
	"strings"
	"time"

	"github.com/lazybrownass/zorel-leather/internal/client"
)

// User-facing copy by error class.
const (
	msgConnectivity = "Unable to connect to the server. Please check your internet connection and try again."
	msgTimeout      = "The request timed out. Please try again."
	msgUnauthorized = "Please sign in to continue."
	msgForbidden    = "You don't have permission to perform this action."
	msgNotFound     = "The requested item could not be found."
	msgConflict     = "This conflicts with the current state. Please refresh and try again."
	msgValidation   = "Please check your input and try again."
	msgUnexpected   = "An unexpected error occurred. Please try again."
)

const (
	baseRetryDelay = time.Second
	maxRetryDelay  = 16 * time.Second
)

// Message returns user-appropriate copy for any error. Total: never panics,
// never returns an empty string.
func Message(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiMessage(apiErr)
	}

	if isTimeout(err) {
		return msgTimeout
	}
	if isConnectivity(err) {
		return msgConnectivity
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgUnexpected
}

func apiMessage(err *client.APIError) string {
	// These backend messages are already written for end users.
	switch err.Code() {
	case client.CodeInvalidCredentials, client.CodeAccountDeactivated:
		if err.Message != "" {
			return err.Message
		}
	}

	switch {
	case err.IsTransport():
		if isTimeout(err) {
			return msgTimeout
		}
		return msgConnectivity
	case err.IsUnauthorized():
		return msgUnauthorized
	case err.IsForbidden():
		return msgForbidden
	case err.IsNotFound():
		return msgNotFound
	case err.IsConflict():
		return msgConflict
	case err.IsValidation():
		if fields := err.ValidationErrors(); len(fields) > 0 && fields[0].Message != "" {
			return fields[0].Message
		}
		return msgValidation
	}

	if err.Message != "" {
		return err.Message
	}
	return msgUnexpected
}

// Title returns a short heading for an error, for inline banners.
func Title(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsUnauthorized():
			return "Authentication Required"
		case apiErr.IsForbidden():
			return "Access Denied"
		case apiErr.IsNotFound():
			return "Not Found"
		case apiErr.IsConflict():
			return "Conflict"
		case apiErr.IsValidation():
			return "Validation Error"
		}
	}
	return "Error"
}

// IsRetryable reports whether a caller-driven retry could plausibly succeed.
// Transport failures and 5xx are retryable; 4xx are not, except 408 and 429.
func IsRetryable(err error) bool {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsTransport():
			return true
		case apiErr.Status == 408 || apiErr.Status == 429:
			return true
		case apiErr.Status >= 500:
			return true
		default:
			return false
		}
	}
	return isTimeout(err) || isConnectivity(err)
}

// RetryDelay returns the backoff for a retry attempt: 1s, 2s, 4s, 8s, then
// capped at 16s. Pure policy; callers own the timer.
func RetryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 4 {
		return maxRetryDelay
	}
	return baseRetryDelay << attempt
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return containsAny(err, "timeout", "deadline exceeded")
}

func isConnectivity(err error) bool {
	return containsAny(err, "connection refused", "no such host", "dial tcp", "network is unreachable", "fetch")
}

func containsAny(err error, needles ...string) bool {
	msg := strings.ToLower(err.Error())
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}
