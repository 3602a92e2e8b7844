package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newRunningHub() *Hub {
	hub := NewHub(nopLogger{})
	go hub.Run()
	return hub
}

func register(t *testing.T, hub *Hub, buffer int) *Client {
	t.Helper()
	client := &Client{Hub: hub, Send: make(chan []byte, buffer)}
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.ViewerCount() > 0
	}, time.Second, 5*time.Millisecond)
	return client
}

func TestBroadcastReachesAllViewers(t *testing.T) {
	hub := newRunningHub()
	a := register(t, hub, 4)
	b := register(t, hub, 4)

	hub.Broadcast([]byte("frame-1"))
	hub.Broadcast([]byte("frame-2"))

	for _, client := range []*Client{a, b} {
		assert.Equal(t, "frame-1", string(<-client.Send))
		assert.Equal(t, "frame-2", string(<-client.Send))
	}
}

func TestSlowViewerIsPrunedWithoutStallingOthers(t *testing.T) {
	hub := newRunningHub()
	slow := register(t, hub, 1)
	fast := register(t, hub, 4)

	// The slow viewer's buffer fills on the first frame; the second frame
	// must still reach the fast viewer and evict the slow one.
	hub.Broadcast([]byte("frame-1"))
	hub.Broadcast([]byte("frame-2"))

	assert.Equal(t, "frame-1", string(<-fast.Send))
	assert.Equal(t, "frame-2", string(<-fast.Send))

	require.Eventually(t, func() bool {
		return hub.ViewerCount() == 1
	}, time.Second, 5*time.Millisecond)

	// The evicted viewer's channel is closed after its buffered frame.
	assert.Equal(t, "frame-1", string(<-slow.Send))
	_, open := <-slow.Send
	assert.False(t, open)
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := newRunningHub()
	client := register(t, hub, 1)

	hub.unregister <- client
	require.Eventually(t, func() bool {
		return hub.ViewerCount() == 0
	}, time.Second, 5*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open)
}
