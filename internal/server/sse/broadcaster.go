// Package sse streams sync events as Server-Sent Events.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/venuemap/internal/server/events"
)

// Events buffered per client; a full buffer skips events for that client.
const clientBuffer = 64

// Compile-time interface check.
var _ events.Subscriber = (*Broadcaster)(nil)

// Broadcaster tracks SSE clients and fans events out to them.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[chan events.Event]struct{}
	seq     int64
	logger  *zerolog.Logger
}

// NewBroadcaster creates a broadcaster.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan events.Event]struct{}),
		logger:  logger,
	}
}

// Send queues an event for every client.
func (b *Broadcaster) Send(event events.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- event:
		default:
			b.logger.Warn().Str("event_type", string(event.Type)).Msg("SSE client buffer full, event skipped")
		}
	}
	return nil
}

// Run ends every stream once ctx is done.
func (b *Broadcaster) Run(ctx context.Context) {
	<-ctx.Done()
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		delete(b.clients, ch)
		close(ch)
	}
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// ServeHTTP streams events until the client goes away or the broadcaster
// stops.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan events.Event, clientBuffer)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	defer b.remove(ch)

	b.write(w, events.Event{
		Type:      events.ClientConnected,
		Timestamp: time.Now().UTC(),
		Data:      map[string]any{"message": "Connected to venuemap sync events"},
	})
	flusher.Flush()

	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			b.write(w, event)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

func (b *Broadcaster) remove(ch chan events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[ch]; ok {
		delete(b.clients, ch)
		close(ch)
	}
}

// write encodes one event in the text/event-stream format.
func (b *Broadcaster) write(w io.Writer, event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}
	b.mu.Lock()
	b.seq++
	id := b.seq
	b.mu.Unlock()
	_, _ = fmt.Fprintf(w, "event: %s\nid: %s\ndata: %s\n\n", event.Type, strconv.FormatInt(id, 10), data)
}
