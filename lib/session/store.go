// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"sync"
	"time"
)

// Stats holds aggregate session counts per status. Computed fresh on
// each call — O(n) over the store, not incrementally maintained.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"by_status"`
}

// Store is the session registry. Implementations must support
// concurrent readers while one pass mutates its own session through
// Update. The in-memory MemoryStore is the only implementation today;
// the interface exists so a durable backing store can be substituted
// without touching the state-machine or fan-out logic.
type Store interface {
	// Put registers a new session.
	Put(s Session)

	// Get returns a copy of the session, or ok=false when absent.
	Get(id string) (Session, bool)

	// List returns copies of all sessions in insertion order.
	List() []Session

	// Update mutates the session under the store's guard. Returns
	// false (without calling mutate) when the id is absent.
	Update(id string, mutate func(*Session)) bool

	// DeleteOlderThan removes sessions generated at or before
	// cutoff and returns how many were removed.
	DeleteOlderThan(cutoff time.Time) int

	// Stats counts sessions per status.
	Stats() Stats
}

// MemoryStore is a mutex-guarded in-memory Store. Sessions survive
// only for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Put registers a new session. Re-putting an existing id replaces the
// session without changing its insertion position.
func (m *MemoryStore) Put(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[s.ID]; !exists {
		m.order = append(m.order, s.ID)
	}
	stored := s.clone()
	m.sessions[s.ID] = &stored
}

// Get returns a copy of the session with the given id.
func (m *MemoryStore) Get(id string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	return stored.clone(), true
}

// List returns copies of all sessions in insertion order.
func (m *MemoryStore) List() []Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sessions := make([]Session, 0, len(m.order))
	for _, id := range m.order {
		sessions = append(sessions, m.sessions[id].clone())
	}
	return sessions
}

// Update runs mutate on the stored session under the write lock.
func (m *MemoryStore) Update(id string, mutate func(*Session)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.sessions[id]
	if !ok {
		return false
	}
	mutate(stored)
	return true
}

// DeleteOlderThan removes every session generated at or before
// cutoff, so a zero max-age sweep clears sessions created this
// instant. The sweep is unbounded: it walks all sessions.
func (m *MemoryStore) DeleteOlderThan(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	kept := m.order[:0]
	for _, id := range m.order {
		if !m.sessions[id].GeneratedAt.After(cutoff) {
			delete(m.sessions, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
	return removed
}

// Stats counts sessions per status.
func (m *MemoryStore) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := Stats{
		Total:    len(m.sessions),
		ByStatus: make(map[Status]int),
	}
	for _, stored := range m.sessions {
		stats.ByStatus[stored.Status]++
	}
	return stats
}
