package events_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/events"
)

func TestPublishReachesMatchingSubscriberOnly(t *testing.T) {
	bus := events.NewBus(zap.NewNop())
	owner, other := uuid.New(), uuid.New()

	got := make(chan events.Event, 1)
	wrong := make(chan events.Event, 1)

	bus.Subscribe(domain.KindPatients, owner, func(e events.Event) { got <- e })
	bus.Subscribe(domain.KindPatients, other, func(e events.Event) { wrong <- e })
	bus.Subscribe(domain.KindTherapies, owner, func(e events.Event) { wrong <- e })

	bus.Publish(events.Event{
		Entity:     domain.KindPatients,
		Type:       events.EventInsert,
		OwnerID:    owner,
		ResourceID: uuid.New(),
		Name:       "Asha Rao",
	})

	select {
	case e := <-got:
		require.Equal(t, events.EventInsert, e.Type)
		require.Equal(t, "Asha Rao", e.Name)
		require.False(t, e.OccurredAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive event")
	}

	select {
	case <-wrong:
		t.Fatal("event delivered outside its (entity, owner) channel")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := events.NewBus(zap.NewNop())
	owner := uuid.New()

	got := make(chan events.Event, 1)
	sub := bus.Subscribe(domain.KindTherapies, owner, func(e events.Event) { got <- e })
	sub.Unsubscribe()
	// Idempotent.
	sub.Unsubscribe()

	bus.Publish(events.Event{
		Entity:  domain.KindTherapies,
		Type:    events.EventUpdate,
		OwnerID: owner,
	})

	select {
	case <-got:
		t.Fatal("event delivered after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHandlerPanicDoesNotPropagate(t *testing.T) {
	bus := events.NewBus(zap.NewNop())
	owner := uuid.New()

	bus.Subscribe(domain.KindPatients, owner, func(events.Event) { panic("boom") })
	bus.Publish(events.Event{Entity: domain.KindPatients, Type: events.EventInsert, OwnerID: owner})

	// Give the dispatch goroutine time to run; the test fails by crashing
	// the process if the recover is missing.
	time.Sleep(50 * time.Millisecond)
}

func TestHandlerPanicDoesNotStarveOtherSubscribers(t *testing.T) {
	bus := events.NewBus(zap.NewNop())
	owner := uuid.New()

	got := make(chan events.Event, 2)
	bus.Subscribe(domain.KindPatients, owner, func(events.Event) { panic("boom") })
	bus.Subscribe(domain.KindPatients, owner, func(e events.Event) { got <- e })
	bus.Subscribe(domain.KindPatients, owner, func(e events.Event) { got <- e })

	bus.Publish(events.Event{Entity: domain.KindPatients, Type: events.EventInsert, OwnerID: owner})

	for i := 0; i < 2; i++ {
		select {
		case <-got:
		case <-time.After(time.Second):
			t.Fatal("subscriber starved by a panicking peer")
		}
	}
}
