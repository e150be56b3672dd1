// Package events is the in-process change feed. Services publish a change
// event after every successful mutation; subscribers (the notification
// bridge) receive events for one practitioner and one entity kind.
// Publishing is fire-and-forget: the mutator never waits on delivery, and
// events with no live subscriber are dropped.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayursutra/ayursutra/internal/domain"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

type Event struct {
	Entity     domain.EntityKind
	Type       EventType
	OwnerID    uuid.UUID
	ResourceID uuid.UUID
	// Name is the display name of the changed row (patient name, therapy
	// name) used to build user-facing messages.
	Name       string
	Status     string
	OccurredAt time.Time
}

type Handler func(Event)

type Subscription struct {
	cancel func()
	once   sync.Once
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

type subKey struct {
	entity domain.EntityKind
	owner  uuid.UUID
}

type Bus struct {
	mu   sync.RWMutex
	subs map[subKey]map[int]Handler
	next int
	log  *zap.Logger
}

func NewBus(log *zap.Logger) *Bus {
	return &Bus{
		subs: make(map[subKey]map[int]Handler),
		log:  log,
	}
}

// Subscribe registers a handler for changes to one entity kind owned by
// one practitioner. Events published before subscription are not replayed.
func (b *Bus) Subscribe(entity domain.EntityKind, ownerID uuid.UUID, fn Handler) *Subscription {
	key := subKey{entity: entity, owner: ownerID}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	if b.subs[key] == nil {
		b.subs[key] = make(map[int]Handler)
	}
	b.subs[key][id] = fn

	return &Subscription{cancel: func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[key], id)
		if len(b.subs[key]) == 0 {
			delete(b.subs, key)
		}
	}}
}

// Publish dispatches asynchronously to every subscriber of the event's
// (entity, owner) channel.
func (b *Bus) Publish(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[subKey{entity: e.Entity, owner: e.OwnerID}]))
	for _, fn := range b.subs[subKey{entity: e.Entity, owner: e.OwnerID}] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	go func() {
		for _, fn := range handlers {
			b.dispatch(fn, e)
		}
	}()
}

// dispatch isolates each handler invocation so one panicking subscriber
// cannot skip delivery to the rest.
func (b *Bus) dispatch(fn Handler, e Event) {
	defer func() {
		if r := recover(); r != nil && b.log != nil {
			b.log.Error("change-feed handler panicked", zap.Any("panic", r))
		}
	}()
	fn(e)
}
