// ABOUTME: Durable token storage port for the storefront client
// ABOUTME: Holds the admin and customer bearer tokens between invocations

package store

// Token storage keys. At most one logical identity is active per key; when
// both are present the admin token wins for outgoing requests.
const (
	KeyAdminToken = "admin_token"
	KeyAuthToken  = "auth_token"
)

// Store is a small key-value port over whatever durable storage is
// available. Implementations must treat a missing key as ("", nil), never as
// an error, so callers can run in storage-less environments.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// BearerToken resolves the token to attach to outgoing requests: the
// admin-scoped token first, then the general auth token. Returns "" when
// neither is present or the store is unavailable.
func BearerToken(s Store) string {
	if s == nil {
		return ""
	}
	if tok, err := s.Get(KeyAdminToken); err == nil && tok != "" {
		return tok
	}
	if tok, err := s.Get(KeyAuthToken); err == nil && tok != "" {
		return tok
	}
	return ""
}

// Null is a no-op Store for environments without durable storage.
type Null struct{}

func (Null) Get(string) (string, error) { return "", nil }
func (Null) Set(string, string) error   { return nil }
func (Null) Delete(string) error        { return nil }
