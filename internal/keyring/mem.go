package keyring

import "sync"

type memEntry struct {
	username string
	secret   string
}

// MemStore is an in-memory Store used by tests across packages. It
// mirrors the SystemStore contract, including the empty-secret-means-
// missing rule.
type MemStore struct {
	mu      sync.Mutex
	entries map[string]memEntry

	// Writes counts Set calls, so tests can assert that read-only
	// flows perform zero writes.
	Writes int
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{entries: map[string]memEntry{}}
}

// Get implements Store.
func (m *MemStore) Get(service string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[service]
	if !ok || e.secret == "" {
		return "", "", ErrNotFound
	}
	return e.username, e.secret, nil
}

// Set implements Store.
func (m *MemStore) Set(service, username, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[service] = memEntry{username: username, secret: secret}
	m.Writes++
	return nil
}

// Delete implements Store.
func (m *MemStore) Delete(service, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[service]
	if !ok || e.username != username {
		return ErrNotFound
	}
	delete(m.entries, service)
	return nil
}

// Len reports how many services currently hold an entry.
func (m *MemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

var _ Store = (*MemStore)(nil)
