package chat

import "sync"

// Manager keeps one Session per login token. Conversations live in process
// memory only; a server restart starts everyone from the greeting again,
// which matches the session-scoped transcript contract.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session for the token, creating it on first use.
func (m *Manager) Get(token, lang, userName string, send SendFunc) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[token]; ok {
		return s
	}
	s := NewSession(lang, userName, send)
	m.sessions[token] = s
	return s
}

// Drop forgets the token's session, used at logout and on 401.
func (m *Manager) Drop(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
