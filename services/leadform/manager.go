package leadform

import (
	"sync"
	"time"

	"streamgrowth_app_go/services"
)

// Manager keeps one session per visitor id
type Manager struct {
	deps     *Dependencies
	mu       sync.Mutex
	sessions map[string]*Session
	inflight sync.WaitGroup
}

// NewManager creates an empty manager sharing deps across sessions
func NewManager(deps Dependencies) *Manager {
	limit := deps.MaxStagedBytes
	if limit <= 0 {
		limit = DefaultMaxStagedBytes
	}
	m := &Manager{
		deps:     &deps,
		sessions: make(map[string]*Session),
	}
	deps.budget = &stagedBudget{limit: limit}
	deps.inflight = &m.inflight
	return m
}

// Session returns the visitor's session, creating a closed one on first use
func (m *Manager) Session(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := NewSession(id, m.deps)
	m.sessions[id] = s
	services.LeadSessionsActive.Set(float64(len(m.sessions)))
	return s
}

// Lookup returns an existing session without creating one
func (m *Manager) Lookup(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Len is the number of sessions held
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StagedBytes is the size of all staged files currently held
func (m *Manager) StagedBytes() int64 {
	return m.deps.budget.inUse()
}

// CleanupIdle closes and forgets sessions with no activity for longer than ttl. Sessions
// holding a staged file go once they have been idle for the shorter staged file TTL.
func (m *Manager) CleanupIdle(ttl time.Duration) int {
	now := m.deps.now()
	cutoff := now.Add(-ttl)
	fileCutoff := now.Add(-m.deps.stagedFileTTL())

	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		lastSeen := s.LastSeen()
		if lastSeen.Before(cutoff) || (lastSeen.Before(fileCutoff) && s.HoldsFile()) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	services.LeadSessionsActive.Set(float64(len(m.sessions)))
	m.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	return len(idle)
}

// Wait blocks until background work started by any session is done, evicted ones included
func (m *Manager) Wait() {
	m.inflight.Wait()
}
