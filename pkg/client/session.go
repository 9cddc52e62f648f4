package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Session is the cached authentication state: the bearer token and the
// user it belongs to.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SessionStore persists the session between calls. Get on an empty or
// damaged store returns a zero session and false, never an error.
type SessionStore interface {
	Set(s Session) error
	Get() (Session, bool)
	Clear() error
}

// MemorySessionStore keeps the session in memory. Suited to tests and
// short-lived tools.
type MemorySessionStore struct {
	mu      sync.RWMutex
	session Session
	present bool
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (m *MemorySessionStore) Set(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.present = true
	return nil
}

func (m *MemorySessionStore) Get() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.present || m.session.Token == "" {
		return Session{}, false
	}
	return m.session, true
}

func (m *MemorySessionStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{}
	m.present = false
	return nil
}

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// FileSessionStore persists the session under a state directory as two
// files: the raw token and the user as JSON.
type FileSessionStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileSessionStore(dir string) (*FileSessionStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileSessionStore{dir: dir}, nil
}

func (f *FileSessionStore) Set(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(filepath.Join(f.dir, tokenFile), []byte(s.Token), 0o600); err != nil {
		return err
	}
	data, err := json.Marshal(s.User)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(f.dir, userFile), data, 0o600)
}

func (f *FileSessionStore) Get() (Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(filepath.Join(f.dir, tokenFile))
	if err != nil {
		return Session{}, false
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return Session{}, false
	}

	s := Session{Token: token}
	if data, err := os.ReadFile(filepath.Join(f.dir, userFile)); err == nil {
		// A damaged user file does not invalidate the token.
		_ = json.Unmarshal(data, &s.User)
	}
	return s, true
}

func (f *FileSessionStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var firstErr error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(f.dir, name)); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
