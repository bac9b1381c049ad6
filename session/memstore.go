package session

import "sync"

// MemStore is an in-process Store. Writes replace the guarded value wholesale,
// so readers never observe a half-updated token pair.
type MemStore struct {
	mu   sync.RWMutex
	snap Snapshot
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory session store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Snapshot() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, nil
}

func (s *MemStore) SetSession(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	return nil
}

func (s *MemStore) SetTokens(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Credentials = creds
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Snapshot{}
	return nil
}
