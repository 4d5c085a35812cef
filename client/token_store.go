package client

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// TokenKey is the field the access token is persisted under.
const TokenKey = "access_token"

// TokenSource is read on every request.
type TokenSource interface {
	Token() (string, error)
}

// TokenStore is a TokenSource that Login and Logout can change.
type TokenStore interface {
	TokenSource
	SetToken(token string) error
	ClearToken() error
}

type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryTokenStore) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryTokenStore) ClearToken() error {
	return s.SetToken("")
}

// FileTokenStore keeps the token in a JSON object file, leaving the file's
// other keys untouched.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// DefaultConfigPath is ~/.travelcms/config.json.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".travelcms", "config.json"), nil
}

func (s *FileTokenStore) Path() string {
	return s.path
}

func (s *FileTokenStore) load() (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *FileTokenStore) save(doc map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileTokenStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return "", err
	}
	var token string
	if raw, ok := doc[TokenKey]; ok {
		if err := json.Unmarshal(raw, &token); err != nil {
			return "", err
		}
	}
	return token, nil
}

func (s *FileTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(token)
	if err != nil {
		return err
	}
	doc[TokenKey] = raw
	return s.save(doc)
}

func (s *FileTokenStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc[TokenKey]; !ok {
		return nil
	}
	delete(doc, TokenKey)
	return s.save(doc)
}
