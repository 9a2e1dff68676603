package server

import (
	"testing"
	"time"
)

func TestSessionCache_StartsEmpty(t *testing.T) {
	c := NewSessionCache(time.Minute, nil)
	if got := c.Len(); got != 0 {
		t.Errorf("new cache should be empty, got %d", got)
	}
}

func TestSessionCache_InvalidateUnknownEndpoint(t *testing.T) {
	c := NewSessionCache(time.Minute, nil)
	// Must not panic or create entries.
	c.Invalidate("http://127.0.0.1:9222")
	if got := c.Len(); got != 0 {
		t.Errorf("invalidating an unknown endpoint should not add entries, got %d", got)
	}
}

func TestSessionCache_CloseEmpty(t *testing.T) {
	c := NewSessionCache(0, nil)
	c.Close()
	if got := c.Len(); got != 0 {
		t.Errorf("closed cache should be empty, got %d", got)
	}
}
