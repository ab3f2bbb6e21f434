package events_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/venuemap/internal/server/events"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Send(e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func TestBrokerDeliversInOrder(t *testing.T) {
	logger := zerolog.Nop()
	b := events.NewBroker(&logger)

	// Subscribing before Run must not block.
	a, c := &recorder{}, &recorder{}
	b.Subscribe(a)
	b.Subscribe(c)
	assert.Equal(t, 2, b.SubscriberCount())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	b.Publish(events.SyncStarted, map[string]any{"syncId": "s1"})
	b.Publish(events.SyncCompleted, map[string]any{"count": 12})

	want := []events.EventType{events.SyncStarted, events.SyncCompleted}
	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(want, a.types()) && assert.ObjectsAreEqual(want, c.types())
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(2), b.Stats().Published)
}

func TestBrokerDropsWhenFull(t *testing.T) {
	logger := zerolog.Nop()
	b := events.NewBroker(&logger)

	// Nothing drains the queue without Run.
	for range 300 {
		b.Publish(events.SyncFailed, nil)
	}
	stats := b.Stats()
	assert.Equal(t, int64(256), stats.Published)
	assert.Equal(t, int64(44), stats.Dropped)
	assert.Equal(t, 256, stats.QueueDepth)
}

func TestSubscriberFunc(t *testing.T) {
	var got events.EventType
	sub := events.SubscriberFunc(func(e events.Event) error {
		got = e.Type
		return nil
	})
	assert.NoError(t, sub.Send(events.Event{Type: events.ClientConnected}))
	assert.Equal(t, events.ClientConnected, got)
}
