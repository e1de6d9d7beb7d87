package handler

import (
	"errors"
	"sync"
)

var ErrSessionBusy = errors.New("a roast is already being generated for this session")

// inflightGuard allows one generation per session at a time.
type inflightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{active: make(map[string]struct{})}
}

func (g *inflightGuard) acquire(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[sessionID]; busy {
		return false
	}
	g.active[sessionID] = struct{}{}
	return true
}

func (g *inflightGuard) release(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.active, sessionID)
}
