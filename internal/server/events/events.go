// Package events fans sync events out to the realtime transports. The
// client's hooks publish into a Broker; the WebSocket hub and the SSE
// broadcaster subscribe to it.
package events

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/venuemap/pkg/constants"
)

// EventType names an event on the wire.
type EventType string

// Event types.
const (
	SyncStarted     EventType = "sync.started"
	SyncCompleted   EventType = "sync.completed"
	SyncFailed      EventType = "sync.failed"
	ClientConnected EventType = "client.connected"
)

// Event is one published event.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Subscriber receives events. Send must not block.
type Subscriber interface {
	Send(Event) error
}

// Broker queues published events and delivers them to every subscriber
// from a single goroutine, so subscribers see events in publish order.
type Broker struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	events      chan Event
	logger      *zerolog.Logger

	published atomic.Int64
	dropped   atomic.Int64
}

// NewBroker creates a broker. Subscribers may be added before Run.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		events: make(chan Event, constants.ChannelBufferSize),
		logger: logger,
	}
}

// Subscribe adds a subscriber.
func (b *Broker) Subscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, sub)
}

// Publish queues an event. A full queue drops the event.
func (b *Broker) Publish(eventType EventType, data any) {
	event := Event{Type: eventType, Timestamp: time.Now().UTC(), Data: data}
	select {
	case b.events <- event:
		b.published.Add(1)
	default:
		b.dropped.Add(1)
		b.logger.Warn().
			Str("event_type", string(eventType)).
			Msg("Event queue full, event dropped")
	}
}

// Run delivers events until ctx is done.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.logger.Debug().Msg("Event broker stopped")
			return
		case event := <-b.events:
			b.mu.RLock()
			subs := b.subscribers
			b.mu.RUnlock()

			for _, sub := range subs {
				if err := sub.Send(event); err != nil {
					b.logger.Warn().
						Err(err).
						Str("event_type", string(event.Type)).
						Msg("Failed to deliver event")
				}
			}
		}
	}
}

// SubscriberCount returns the number of subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Stats reports delivery counters.
type Stats struct {
	Published  int64 `json:"published"`
	Dropped    int64 `json:"dropped"`
	QueueDepth int   `json:"queueDepth"`
}

// Stats returns the broker's counters.
func (b *Broker) Stats() Stats {
	return Stats{
		Published:  b.published.Load(),
		Dropped:    b.dropped.Load(),
		QueueDepth: len(b.events),
	}
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(Event) error

// Send implements Subscriber.
func (f SubscriberFunc) Send(e Event) error { return f(e) }
