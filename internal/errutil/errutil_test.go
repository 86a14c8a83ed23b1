// ABOUTME: Tests for error presentation helpers
// ABOUTME: Covers message mapping, titles, retryability, and backoff schedule

package errutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lazybrownass/zorel-leather/internal/client"
)

func httpHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
		}
		w.Write([]byte(body))
	})
}

// apiError builds an APIError by round-tripping through a real client call,
// so the tests exercise the same construction path production uses.
func apiError(t *testing.T, status int, body string) *client.APIError {
	t.Helper()
	server := httptest.NewServer(httpHandler(status, body))
	defer server.Close()

	c := client.New(client.Config{BaseURL: server.URL})
	err := c.Get(context.Background(), "/anything", nil)

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	return apiErr
}

func transportAPIError(t *testing.T) *client.APIError {
	t.Helper()
	server := httptest.NewServer(httpHandler(200, "{}"))
	server.Close()

	c := client.New(client.Config{BaseURL: server.URL})
	err := c.Get(context.Background(), "/anything", nil)

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	return apiErr
}

func TestMessage_KnownCodesPassThrough(t *testing.T) {
	err := apiError(t, 401, `{"error":{"code":"INVALID_CREDENTIALS","message":"Invalid email or password"}}`)
	if got := Message(err); got != "Invalid email or password" {
		t.Errorf("expected backend message passed through, got %q", got)
	}

	err = apiError(t, 403, `{"error":{"code":"ACCOUNT_DEACTIVATED","message":"Your account has been deactivated"}}`)
	if got := Message(err); got != "Your account has been deactivated" {
		t.Errorf("expected backend message passed through, got %q", got)
	}
}

func TestMessage_ClassifiedStatuses(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   string
	}{
		{401, `{"message":"nope"}`, msgUnauthorized},
		{403, `{"message":"nope"}`, msgForbidden},
		{404, `{"message":"nope"}`, msgNotFound},
		{409, `{"message":"nope"}`, msgConflict},
		{422, `{"detail":"bad input"}`, msgValidation},
	}
	for _, tc := range cases {
		err := apiError(t, tc.status, tc.body)
		if got := Message(err); got != tc.want {
			t.Errorf("status %d: expected %q, got %q", tc.status, tc.want, got)
		}
	}
}

func TestMessage_ValidationFirstFieldError(t *testing.T) {
	err := apiError(t, 422, `{"detail":[{"msg":"field required","loc":["body","email"]}]}`)
	if got := Message(err); got != "field required" {
		t.Errorf("expected first field error, got %q", got)
	}
}

func TestMessage_TransportFailure(t *testing.T) {
	err := transportAPIError(t)
	got := Message(err)
	if !strings.Contains(got, "Unable to connect") {
		t.Errorf("expected connectivity copy, got %q", got)
	}
}

func TestMessage_FallbackToRawMessage(t *testing.T) {
	err := apiError(t, 500, `{"message":"backend on fire"}`)
	if got := Message(err); got != "backend on fire" {
		t.Errorf("expected raw message fallback, got %q", got)
	}
}

func TestMessage_GenericErrors(t *testing.T) {
	if got := Message(errors.New("failed to fetch resource")); got != msgConnectivity {
		t.Errorf("expected connectivity copy for fetch error, got %q", got)
	}
	if got := Message(errors.New("request timeout exceeded")); got != msgTimeout {
		t.Errorf("expected timeout copy, got %q", got)
	}
	if got := Message(errors.New("something odd")); got != "something odd" {
		t.Errorf("expected passthrough, got %q", got)
	}
	if got := Message(nil); got == "" {
		t.Error("expected non-empty message for nil error")
	}
}

func TestMessage_TotalOverStatusAndShapeGrid(t *testing.T) {
	statuses := []int{400, 401, 403, 404, 409, 422, 500, 502}
	bodies := []string{
		`{"detail":[{"msg":"bad","loc":["body","x"]}]}`,
		`{"detail":"bad"}`,
		`{"error":{"code":"SOME_CODE","message":"bad"}}`,
		`{"message":"bad"}`,
	}
	for _, status := range statuses {
		for _, body := range bodies {
			err := apiError(t, status, body)
			if got := Message(err); got == "" {
				t.Errorf("status %d body %s: empty message", status, body)
			}
			if got := Title(err); got == "" {
				t.Errorf("status %d body %s: empty title", status, body)
			}
		}
	}
}

func TestTitle(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{401, "Authentication Required"},
		{403, "Access Denied"},
		{404, "Not Found"},
		{409, "Conflict"},
		{422, "Validation Error"},
		{500, "Error"},
	}
	for _, tc := range cases {
		err := apiError(t, tc.status, `{"message":"x"}`)
		if got := Title(err); got != tc.want {
			t.Errorf("status %d: expected %q, got %q", tc.status, tc.want, got)
		}
	}

	if got := Title(errors.New("plain")); got != "Error" {
		t.Errorf("expected Error for generic error, got %q", got)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		status int
		want   bool
	}{
		{400, false},
		{401, false},
		{403, false},
		{404, false},
		{408, true},
		{422, false},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
	}
	for _, tc := range cases {
		err := apiError(t, tc.status, `{"message":"x"}`)
		if got := IsRetryable(err); got != tc.want {
			t.Errorf("status %d: IsRetryable = %v, want %v", tc.status, got, tc.want)
		}
	}

	if !IsRetryable(transportAPIError(t)) {
		t.Error("expected transport failure to be retryable")
	}
	if !IsRetryable(errors.New("failed to fetch")) {
		t.Error("expected fetch-shaped error to be retryable")
	}
	if IsRetryable(errors.New("invalid argument")) {
		t.Error("expected generic error to be non-retryable")
	}
}

func TestRetryDelay(t *testing.T) {
	want := []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
	}
	for attempt, expected := range want {
		if got := RetryDelay(attempt); got != expected {
			t.Errorf("attempt %d: expected %v, got %v", attempt, expected, got)
		}
	}

	if got := RetryDelay(10); got != 16*time.Second {
		t.Errorf("expected cap at 16s, got %v", got)
	}
	if got := RetryDelay(-1); got != time.Second {
		t.Errorf("expected floor at 1s, got %v", got)
	}
}
