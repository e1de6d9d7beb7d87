// Package history keeps the most recent roasts of each session.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/kdduha/burnmaster/internal/models"
)

type memorySession struct {
	entries []models.GeneratedRoast
	touched time.Time
}

// MemoryStore is a process-local history. It is lost on restart. A session
// not pushed to for ttl is dropped, like the redis key expiring.
type MemoryStore struct {
	mu        sync.Mutex
	limit     int
	ttl       time.Duration
	sessions  map[string]*memorySession
	lastSweep time.Time

	now func() time.Time
}

func NewMemoryStore(limit int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		limit:     limit,
		ttl:       ttl,
		sessions:  make(map[string]*memorySession),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Push prepends the roast and drops entries past the limit.
func (m *MemoryStore) Push(_ context.Context, sessionID string, roast models.GeneratedRoast) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	var prev []models.GeneratedRoast
	if sess, ok := m.sessions[sessionID]; ok && !m.expired(sess, now) {
		prev = sess.entries
	}
	next := make([]models.GeneratedRoast, 0, min(len(prev)+1, m.limit))
	next = append(next, roast)
	for _, r := range prev {
		if len(next) >= m.limit {
			break
		}
		next = append(next, r)
	}
	m.sessions[sessionID] = &memorySession{entries: next, touched: now}
	return nil
}

func (m *MemoryStore) List(_ context.Context, sessionID string) ([]models.GeneratedRoast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return []models.GeneratedRoast{}, nil
	}
	if m.expired(sess, m.now()) {
		delete(m.sessions, sessionID)
		return []models.GeneratedRoast{}, nil
	}
	out := make([]models.GeneratedRoast, len(sess.entries))
	copy(out, sess.entries)
	return out, nil
}

func (m *MemoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryStore) expired(sess *memorySession, now time.Time) bool {
	return m.ttl > 0 && now.Sub(sess.touched) >= m.ttl
}

// sweep drops idle sessions at most once per ttl. Callers hold mu.
func (m *MemoryStore) sweep(now time.Time) {
	if m.ttl <= 0 || now.Sub(m.lastSweep) < m.ttl {
		return
	}
	for id, sess := range m.sessions {
		if m.expired(sess, now) {
			delete(m.sessions, id)
		}
	}
	m.lastSweep = now
}
