package store

import (
	"sync"

	"github.com/xenking/storefront/internal/catalog"
	"github.com/xenking/storefront/internal/promo"
)

// Manager hands out one Session per authenticated token. All sessions share
// the same catalog, so one shopper's reservation is visible to every other
// shopper's stock view.
type Manager struct {
	catalog *catalog.Catalog
	promos  promo.Validator

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a Manager over the shared catalog.
func NewManager(cat *catalog.Catalog, promos promo.Validator) *Manager {
	return &Manager{
		catalog:  cat,
		promos:   promos,
		sessions: make(map[string]*Session),
	}
}

// Session returns the session for token, creating it on first use.
func (m *Manager) Session(token string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[token]; ok {
		return s
	}
	s = NewSession(m.catalog, m.promos)
	m.sessions[token] = s
	return s
}

// Drop discards the session for token, releasing any stock it still holds
// in its cart.
func (m *Manager) Drop(token string) error {
	m.mu.Lock()
	s, ok := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return s.Clear()
}
