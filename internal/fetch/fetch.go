// ABOUTME: Generic data-fetching task exposing data/loading/error state with refetch
// ABOUTME: The one pattern every screen uses to load from the API client

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Producer is a bound, argument-free fetch operation.
type Producer[T any] func(ctx context.Context) (T, error)

// State is the snapshot a consumer renders from. Err and Data are not
// mutually exclusive: a failed refetch keeps the previous data visible.
type State[T any] struct {
	Data    T
	HasData bool
	Loading bool
	Err     error
}

// Task runs a producer and tracks its state. Concurrent fetches on one task
// are last-write-wins; a closed task never commits state again.
type Task[T any] struct {
	mu       sync.Mutex
	producer Producer[T]
	state    State[T]
	key      string
	hasKey   bool
	closed   bool
	onChange func(State[T])
}

// New creates a task for producer. The task does not fetch until asked.
func New[T any](producer Producer[T]) *Task[T] {
	return &Task[T]{producer: producer}
}

// OnChange registers a callback invoked (outside the lock) after every state
// transition. Used by the TUI to trigger repaints.
func (t *Task[T]) OnChange(fn func(State[T])) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// State returns the current snapshot.
func (t *Task[T]) State() State[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Fetch runs the producer. Loading is set and the error cleared before the
// call; on success data is replaced, on failure the error is recorded and
// previous data is left untouched; loading clears on every outcome.
func (t *Task[T]) Fetch(ctx context.Context) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.state.Loading = true
	t.state.Err = nil
	notify := t.onChange
	snapshot := t.state
	t.mu.Unlock()
	if notify != nil {
		notify(snapshot)
	}

	data, err := t.producer(ctx)

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	if err != nil {
		t.state.Err = err
	} else {
		t.state.Data = data
		t.state.HasData = true
		t.state.Err = nil
	}
	t.state.Loading = false
	notify = t.onChange
	snapshot = t.state
	t.mu.Unlock()
	if notify != nil {
		notify(snapshot)
	}
}

// Refetch re-runs the producer on demand.
func (t *Task[T]) Refetch(ctx context.Context) {
	t.Fetch(ctx)
}

// SetKey fetches when the serialized key differs from the last one seen.
// Keys are compared by JSON encoding, so equal-by-value keys never trigger
// a redundant fetch.
func (t *Task[T]) SetKey(ctx context.Context, key any) {
	encoded, err := json.Marshal(key)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%#v", key))
	}

	t.mu.Lock()
	if t.closed || (t.hasKey && t.key == string(encoded)) {
		t.mu.Unlock()
		return
	}
	t.key = string(encoded)
	t.hasKey = true
	t.mu.Unlock()

	t.Fetch(ctx)
}

// Close stops the task from ever committing state again. Safe to call with
// a fetch in flight; the late result is dropped.
func (t *Task[T]) Close() {
	t.mu.Lock()
	t.closed = true
	t.onChange = nil
	t.mu.Unlock()
}
