// ABOUTME: File-backed token store under the user's zorel directory
// ABOUTME: Persists tokens as a JSON map with restrictive permissions

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists tokens in a JSON file under the zorel home directory.
type FileStore struct {
	path string
}

// NewFileStore creates a token store under $ZOREL_HOME or ~/.zorel.
func NewFileStore() (*FileStore, error) {
	home := os.Getenv("ZOREL_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		home = filepath.Join(userHome, ".zorel")
	}

	if err := os.MkdirAll(home, 0700); err != nil {
		return nil, fmt.Errorf("creating %s: %w", home, err)
	}

	return &FileStore{path: filepath.Join(home, "tokens.json")}, nil
}

// Get returns the stored value for key, or "" if absent.
func (fs *FileStore) Get(key string) (string, error) {
	tokens, err := fs.load()
	if err != nil {
		return "", err
	}
	return tokens[key], nil
}

// Set writes the value for key, creating the file if needed.
func (fs *FileStore) Set(key, value string) error {
	tokens, err := fs.load()
	if err != nil {
		return err
	}
	tokens[key] = value
	return fs.save(tokens)
}

// Delete removes key. Deleting an absent key is not an error.
func (fs *FileStore) Delete(key string) error {
	tokens, err := fs.load()
	if err != nil {
		return err
	}
	if _, ok := tokens[key]; !ok {
		return nil
	}
	delete(tokens, key)
	return fs.save(tokens)
}

func (fs *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}

	tokens := map[string]string{}
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}
	return tokens, nil
}

func (fs *FileStore) save(tokens map[string]string) error {
	data, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing tokens: %w", err)
	}
	if err := os.WriteFile(fs.path, data, 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}
