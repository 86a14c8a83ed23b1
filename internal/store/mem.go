// ABOUTME: In-memory token store for tests and ephemeral sessions
// ABOUTME: Safe for concurrent readers and writers

package store

import "sync"

// MemStore is an in-memory Store implementation.
type MemStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{tokens: map[string]string{}}
}

func (m *MemStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens[key], nil
}

func (m *MemStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[key] = value
	return nil
}

func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, key)
	return nil
}
