package server

import (
	"context"
	"sync"
	"time"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/browser"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/logging"
)

// sessionEntry holds a cached browser attachment with its last-use time.
type sessionEntry struct {
	session  *browser.Session
	lastUsed time.Time
}

// SessionCache reuses browser attachments across tool calls, keyed by
// endpoint. Sessions stay owned by the cache; callers must not Close
// what Acquire returns.
type SessionCache struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	ttl     time.Duration
	log     *logging.Logger
}

// NewSessionCache creates a cache. A ttl of 0 re-attaches on every call.
func NewSessionCache(ttl time.Duration, log *logging.Logger) *SessionCache {
	if log == nil {
		log = logging.Nop()
	}
	return &SessionCache{
		entries: make(map[string]*sessionEntry),
		ttl:     ttl,
		log:     log,
	}
}

// Acquire returns an attachment to endpoint, reusing a cached one that
// was used within the TTL and re-dialing otherwise. The dial runs under
// the lock so a given endpoint is attached exactly once.
func (c *SessionCache) Acquire(ctx context.Context, endpoint string) (*browser.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[endpoint]; ok {
		if c.ttl > 0 && time.Since(entry.lastUsed) < c.ttl {
			entry.lastUsed = time.Now()
			return entry.session, nil
		}
		entry.session.Close()
		delete(c.entries, endpoint)
	}

	session, err := browser.Attach(ctx, endpoint, c.log)
	if err != nil {
		return nil, err
	}
	c.entries[endpoint] = &sessionEntry{session: session, lastUsed: time.Now()}
	return session, nil
}

// Invalidate drops the cached attachment for endpoint, closing it. Called
// after a protocol error so the next Acquire re-dials.
func (c *SessionCache) Invalidate(endpoint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[endpoint]; ok {
		entry.session.Close()
		delete(c.entries, endpoint)
	}
}

// Len reports how many attachments are currently cached.
func (c *SessionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close releases every cached attachment.
func (c *SessionCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for endpoint, entry := range c.entries {
		entry.session.Close()
		delete(c.entries, endpoint)
	}
}
