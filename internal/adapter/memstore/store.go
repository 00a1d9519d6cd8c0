// Package memstore keeps session credentials in process memory. It is the
// default session store; nothing survives a restart, which matches the rule
// that no token outlives its session.
package memstore

import (
	"context"
	"sync"

	"meta-ads-proxy/internal/core/domain"
	"meta-ads-proxy/internal/core/port"
)

var _ port.SessionStore = (*Store)(nil)

// Store maps session ids to their single credential slot. The map is guarded
// for memory safety; a slot itself is last-writer-wins with no further
// synchronization, so a reader racing a logout may see either state.
type Store struct {
	mu    sync.RWMutex
	creds map[string]domain.Credential
}

// New returns an empty store.
func New() *Store {
	return &Store{creds: make(map[string]domain.Credential)}
}

// Credential returns a copy of the session's credential, or nil when the
// session holds none.
func (s *Store) Credential(_ context.Context, sessionID string) (*domain.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.creds[sessionID]
	if !ok {
		return nil, nil
	}
	return &cred, nil
}

// SaveCredential replaces the session's credential.
func (s *Store) SaveCredential(_ context.Context, sessionID string, cred domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[sessionID] = cred
	return nil
}

// DeleteCredential drops the session's credential, if any.
func (s *Store) DeleteCredential(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, sessionID)
	return nil
}
