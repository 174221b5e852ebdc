// Package keylock provides per-key mutual exclusion. The store uses it to
// serialize concurrent work on a single document without blocking unrelated
// keys.
package keylock

import "sync"

type Manager struct {
	mapMu sync.RWMutex
	locks map[string]*sync.Mutex
}

func New() *Manager {
	return &Manager{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for key, creating it on first use
func (m *Manager) Lock(key string) {
	m.mapMu.RLock()
	mu, exists := m.locks[key]
	m.mapMu.RUnlock()

	if !exists {
		m.mapMu.Lock()
		mu, exists = m.locks[key]
		if !exists {
			mu = &sync.Mutex{}
			m.locks[key] = mu
		}
		m.mapMu.Unlock()
	}

	mu.Lock()
}

// Unlock releases the mutex for key. Unlocking a key that was never locked
// is a no-op.
func (m *Manager) Unlock(key string) {
	m.mapMu.RLock()
	mu, exists := m.locks[key]
	m.mapMu.RUnlock()

	if exists {
		mu.Unlock()
	}
}
