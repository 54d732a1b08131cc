package cart

import (
	"log/slog"
	"sync"

	"github.com/tiffanyadora/storefront/internal/view"
)

// Session bundles the per-session synchronizer with its renderer.
type Session struct {
	Sync     *Synchronizer
	Renderer *view.Renderer
}

// Registry hands out one Session per session ID, creating it on first use.
// Every synchronizer shares the same store API client, notifier, and event
// producer; only the mirror and views are per-session.
type Registry struct {
	api      CartAPI
	notifier Notifier
	producer Events
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry(api CartAPI, notifier Notifier, producer Events, logger *slog.Logger) *Registry {
	return &Registry{
		api:      api,
		notifier: notifier,
		producer: producer,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session's cart state, creating a fresh synchronizer with a
// registered renderer the first time a session is seen.
func (r *Registry) Get(sessionID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[sessionID]; ok {
		return sess
	}

	sync := NewSynchronizer(sessionID, r.api, r.notifier, r.producer, r.logger)
	renderer := view.NewRenderer()
	sync.Register(renderer)

	sess := &Session{Sync: sync, Renderer: renderer}
	r.sessions[sessionID] = sess
	return sess
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
