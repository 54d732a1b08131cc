package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification lifetimes. A notification is visible for DefaultTTL and kept
// around for a short grace period after expiry so in-flight reads still see
// it fading out.
const (
	DefaultTTL = 3 * time.Second
	fadeGrace  = 300 * time.Millisecond
)

// Level classifies a notification for presentation.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a transient per-session message.
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Center holds transient notifications per session. Expired entries are
// pruned lazily on read and write.
type Center struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string][]Notification
}

// NewCenter creates a notification center with the given visibility TTL.
// A non-positive ttl falls back to DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string][]Notification),
	}
}

// WithClock overrides the time source. Intended for tests.
func (c *Center) WithClock(now func() time.Time) *Center {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Push adds a notification for the session and returns it.
func (c *Center) Push(sessionID string, level Level, message string) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := Notification{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
	c.sessions[sessionID] = append(c.pruneLocked(sessionID, now), n)
	return n
}

// Active returns the session's notifications that have not yet expired,
// oldest first.
func (c *Center) Active(sessionID string) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	kept := c.pruneLocked(sessionID, now)
	if len(kept) == 0 {
		delete(c.sessions, sessionID)
		return []Notification{}
	}
	c.sessions[sessionID] = kept

	active := make([]Notification, 0, len(kept))
	for _, n := range kept {
		if now.Before(n.ExpiresAt) {
			active = append(active, n)
		}
	}
	return active
}

// pruneLocked drops notifications past their fade grace. Caller holds mu.
func (c *Center) pruneLocked(sessionID string, now time.Time) []Notification {
	var kept []Notification
	for _, n := range c.sessions[sessionID] {
		if now.Before(n.ExpiresAt.Add(fadeGrace)) {
			kept = append(kept, n)
		}
	}
	return kept
}
