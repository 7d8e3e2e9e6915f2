package gallery

import "sync"

// DefaultSession is the session used when a caller does not identify itself.
const DefaultSession = "default"

// Manager keys gallery stores by session ID. Stores are created on first use
// and live until their session is reset.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Store
}

func NewManager() *Manager {
	return &Manager{sessions: map[string]*Store{}}
}

// Session returns the store for the given session ID, creating it if needed.
// An empty ID maps to DefaultSession.
func (m *Manager) Session(id string) *Store {
	if id == "" {
		id = DefaultSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.sessions[id]
	if !ok {
		store = NewStore()
		m.sessions[id] = store
	}
	return store
}

// Reset drops the session's store entirely and reports how many records it
// held.
func (m *Manager) Reset(id string) int {
	if id == "" {
		id = DefaultSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.sessions[id]
	if !ok {
		return 0
	}
	delete(m.sessions, id)
	return store.Len()
}

// SessionCount reports how many sessions currently hold a store.
func (m *Manager) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
