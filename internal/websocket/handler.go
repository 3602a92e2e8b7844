package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches a viewer connection to the hub. If an initial frame is
// supplied it is queued before fan-out starts, so a new viewer renders the
// current state without waiting for the next mutation.
func ServeWs(hub *Hub, c *websocket.Conn, initialFrame []byte) {
	client := &Client{Hub: hub, Conn: c, Send: make(chan []byte, 256)}
	if initialFrame != nil {
		client.Send <- initialFrame
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
