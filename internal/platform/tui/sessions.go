package tui

import (
	"sync"
	"time"
)

// sessionInfo describes one connected SSH user.
type sessionInfo struct {
	User    string
	Remote  string
	Started time.Time
}

// activeSessions tracks connected SSH sessions.
// Thread-safe for concurrent access.
type activeSessions struct {
	mu       sync.RWMutex
	limit    int // 0 means unlimited
	sessions map[string]sessionInfo
}

func newActiveSessions(limit int) *activeSessions {
	return &activeSessions{
		limit:    limit,
		sessions: make(map[string]sessionInfo),
	}
}

// Add registers a session. It returns false when the server is full.
func (a *activeSessions) Add(id string, info sessionInfo) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.limit > 0 && len(a.sessions) >= a.limit {
		return false
	}
	a.sessions[id] = info
	return true
}

// Remove unregisters a session and returns how long it lasted.
func (a *activeSessions) Remove(id string) time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()

	info, ok := a.sessions[id]
	if !ok {
		return 0
	}
	delete(a.sessions, id)
	return time.Since(info.Started)
}

// Count returns the number of connected sessions.
func (a *activeSessions) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.sessions)
}
