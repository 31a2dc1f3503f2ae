package storage

import "sync"

// MemStore is an in-memory slot store. It backs the session scope (its
// contents vanish with the process, so re-opening the app always requires
// re-authentication) and doubles as the store used in tests.
type MemStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{slots: make(map[string]string)}
}

// Get returns the slot value, or ok=false if the slot was never written.
func (s *MemStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[key]
	return v, ok, nil
}

// Set writes the slot value, replacing any previous value.
func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = value
	return nil
}

// Delete removes the slot. Deleting an absent slot is not an error.
func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}
