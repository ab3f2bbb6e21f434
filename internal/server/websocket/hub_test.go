package websocket_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/internal/server/events"
	"github.com/agentstation/venuemap/internal/server/websocket"
)

func dial(t *testing.T, hub *websocket.Hub) *gws.Conn {
	t.Helper()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *gws.Conn) events.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var e events.Event
	require.NoError(t, conn.ReadJSON(&e))
	return e
}

func TestHubStreamsEvents(t *testing.T) {
	logger := zerolog.Nop()
	hub := websocket.NewHub(&logger)
	conn := dial(t, hub)

	assert.Equal(t, events.ClientConnected, read(t, conn).Type)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Send(events.Event{
		Type: events.SyncCompleted,
		Data: map[string]any{"count": 12},
	}))

	got := read(t, conn)
	assert.Equal(t, events.SyncCompleted, got.Type)
	assert.Equal(t, map[string]any{"count": float64(12)}, got.Data)
}

func TestHubDisconnect(t *testing.T) {
	logger := zerolog.Nop()
	hub := websocket.NewHub(&logger)
	conn := dial(t, hub)
	read(t, conn)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHubRunClosesClients(t *testing.T) {
	logger := zerolog.Nop()
	hub := websocket.NewHub(&logger)
	conn := dial(t, hub)
	read(t, conn)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	assert.Equal(t, 0, hub.ClientCount())
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
