package notification

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/events"
)

// Hub manages per-practitioner notification centers. A center and its
// change-feed subscriptions are established lazily, the first time a
// practitioner's feed is requested after sign-in.
type Hub struct {
	bus     *events.Bus
	log     *zap.Logger
	observe func(notificationType string)

	mu      sync.Mutex
	centers map[uuid.UUID]*ownerFeed
}

type ownerFeed struct {
	center *Center
	subs   []*events.Subscription
}

type Option func(*Hub)

// WithObserver attaches a callback fired for every delivered notification,
// typically a prometheus counter increment keyed by type.
func WithObserver(fn func(notificationType string)) Option {
	return func(h *Hub) { h.observe = fn }
}

func NewHub(bus *events.Bus, log *zap.Logger, opts ...Option) *Hub {
	h := &Hub{
		bus:     bus,
		log:     log,
		centers: make(map[uuid.UUID]*ownerFeed),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// For returns the practitioner's notification center, creating it and
// attaching the change-feed bridge on first use.
func (h *Hub) For(ownerID uuid.UUID) *Center {
	h.mu.Lock()
	defer h.mu.Unlock()

	if f, ok := h.centers[ownerID]; ok {
		return f.center
	}

	c := NewCenter()
	f := &ownerFeed{
		center: c,
		subs: []*events.Subscription{
			h.bus.Subscribe(domain.KindPatients, ownerID, patientBridge(c, h.observe)),
			h.bus.Subscribe(domain.KindTherapies, ownerID, therapyBridge(c, h.observe)),
		},
	}
	h.centers[ownerID] = f
	return c
}

// Drop tears down a practitioner's feed and subscriptions, e.g. on sign-out.
func (h *Hub) Drop(ownerID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, ok := h.centers[ownerID]
	if !ok {
		return
	}
	for _, s := range f.subs {
		s.Unsubscribe()
	}
	delete(h.centers, ownerID)
}

// deliver inserts into the feed and reports the delivery.
func deliver(c *Center, observe func(string), n Notification) {
	c.Add(n)
	if observe != nil {
		observe(string(n.Type))
	}
}

func patientBridge(c *Center, observe func(string)) events.Handler {
	return func(e events.Event) {
		switch e.Type {
		case events.EventInsert:
			deliver(c, observe, Notification{
				ID:        fmt.Sprintf("patient-%s", e.ResourceID),
				Type:      TypeSuccess,
				Title:     "New Patient Added",
				Message:   fmt.Sprintf("%s has been added to your practice", e.Name),
				Timestamp: e.OccurredAt,
			})
		case events.EventUpdate:
			deliver(c, observe, Notification{
				ID:        fmt.Sprintf("patient-update-%s", e.ResourceID),
				Type:      TypeInfo,
				Title:     "Patient Updated",
				Message:   fmt.Sprintf("%s's information has been updated", e.Name),
				Timestamp: e.OccurredAt,
			})
		}
	}
}

func therapyBridge(c *Center, observe func(string)) events.Handler {
	return func(e events.Event) {
		switch e.Type {
		case events.EventInsert:
			deliver(c, observe, Notification{
				ID:        fmt.Sprintf("therapy-%s", e.ResourceID),
				Type:      TypeInfo,
				Title:     "New Therapy Scheduled",
				Message:   fmt.Sprintf("%s has been scheduled", e.Name),
				Timestamp: e.OccurredAt,
			})
		case events.EventUpdate:
			// Only the completed and cancelled transitions surface to the
			// practitioner; other status changes stay silent.
			switch e.Status {
			case "completed":
				deliver(c, observe, Notification{
					ID:        fmt.Sprintf("therapy-completed-%s", e.ResourceID),
					Type:      TypeSuccess,
					Title:     "Therapy Completed",
					Message:   fmt.Sprintf("%s has been completed", e.Name),
					Timestamp: e.OccurredAt,
				})
			case "cancelled":
				deliver(c, observe, Notification{
					ID:        fmt.Sprintf("therapy-cancelled-%s", e.ResourceID),
					Type:      TypeWarning,
					Title:     "Therapy Cancelled",
					Message:   fmt.Sprintf("%s has been cancelled", e.Name),
					Timestamp: e.OccurredAt,
				})
			}
		}
	}
}
