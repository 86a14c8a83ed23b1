// ABOUTME: Shared output and error helpers for zorel commands
// ABOUTME: Centralizes JSON printing, error presentation, and retry policy

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lazybrownass/zorel-leather/internal/errutil"
)

const maxAttempts = 3

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

// fail prints an error in user-facing form and returns the exit code:
// 2 for retryable (connectivity-shaped) failures, 1 for everything else.
func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "%s: %s\n", errutil.Title(err), errutil.Message(err))
	if errutil.IsRetryable(err) {
		return 2
	}
	return 1
}

// withRetry runs fn, retrying retryable failures with backoff. Only used
// for read-only calls; writes run exactly once.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(errutil.RetryDelay(attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err = fn(); err == nil || !errutil.IsRetryable(err) {
			return err
		}
	}
	return err
}
