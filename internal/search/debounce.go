package search

import (
	"sync"
	"time"
)

// DefaultDebounce matches the quiet period a search box waits before firing.
const DefaultDebounce = 300 * time.Millisecond

type pending struct {
	timer      *time.Timer
	superseded chan struct{}
}

// Debouncer coalesces bursts of calls per key: only the last function
// submitted within the quiet period runs. Earlier callers learn they were
// superseded through the returned channel.
type Debouncer struct {
	delay   time.Duration
	mu      sync.Mutex
	waiting map[string]*pending
}

// NewDebouncer creates a debouncer with the given quiet period. A
// non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{
		delay:   delay,
		waiting: make(map[string]*pending),
	}
}

// Do schedules fn to run after the quiet period. Submitting again for the
// same key before the period elapses cancels the earlier fn and closes its
// superseded channel.
func (d *Debouncer) Do(key string, fn func()) <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.waiting[key]; ok {
		prev.timer.Stop()
		close(prev.superseded)
	}

	p := &pending{superseded: make(chan struct{})}
	p.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.waiting[key] == p {
			delete(d.waiting, key)
		}
		d.mu.Unlock()
		fn()
	})
	d.waiting[key] = p
	return p.superseded
}

// Cancel drops any pending call for the key.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if prev, ok := d.waiting[key]; ok {
		prev.timer.Stop()
		close(prev.superseded)
		delete(d.waiting, key)
	}
}
