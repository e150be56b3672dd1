// Package notification turns change-feed events into a bounded,
// de-duplicated, per-practitioner notification feed. The feed is ephemeral:
// it lives in process memory and is not synchronized or persisted.
package notification

import (
	"sync"
	"time"
)

type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// maxNotifications caps the feed; insertion beyond the cap silently drops
// the oldest entries.
const maxNotifications = 50

// Center holds one practitioner's notification feed, newest first.
type Center struct {
	mu     sync.RWMutex
	items  []*Notification
	unread int
}

func NewCenter() *Center {
	return &Center{}
}

// Add inserts at the head. An existing entry with the same ID is replaced
// rather than duplicated.
func (c *Center) Add(n Notification) {
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.items {
		if existing.ID == n.ID {
			if !existing.Read {
				c.unread--
			}
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}

	c.items = append([]*Notification{&n}, c.items...)
	if len(c.items) > maxNotifications {
		c.items = c.items[:maxNotifications]
	}
	c.unread++
}

// List returns a snapshot of the feed, newest first.
func (c *Center) List() []Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Notification, len(c.items))
	for i, n := range c.items {
		out[i] = *n
	}
	return out
}

func (c *Center) UnreadCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.unread
}

func (c *Center) MarkAsRead(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.items {
		if n.ID == id {
			if !n.Read {
				n.Read = true
				if c.unread > 0 {
					c.unread--
				}
			}
			return
		}
	}
}

func (c *Center) MarkAllAsRead() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.items {
		n.Read = true
	}
	c.unread = 0
}

func (c *Center) Clear(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.items {
		if n.ID == id {
			if !n.Read && c.unread > 0 {
				c.unread--
			}
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Center) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.unread = 0
}
