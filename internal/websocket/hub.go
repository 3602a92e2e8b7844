package websocket

import (
	"sync"

	"auction-desk-be/internal/pkg/logger"
)

// Hub fans live frames out to every connected viewer. There is no per-user
// routing: the auction floor is one room and every viewer sees the same
// frames in the same order.
type Hub struct {
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Viewer connected", map[string]interface{}{"viewers": count})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Viewer disconnected", map[string]interface{}{"viewers": count})
		}
	}
}

// Broadcast sends a frame to every connected viewer. A viewer whose send
// buffer is full is pruned rather than allowed to stall the rest.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.RLock()
	var stalled []*Client
	for client := range h.clients {
		select {
		case client.Send <- payload:
		default:
			stalled = append(stalled, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stalled {
		h.logger.Warn("Hub", "Viewer send buffer full, dropping connection", nil)
		h.unregister <- client
	}
}

// ViewerCount reports the number of connected viewers.
func (h *Hub) ViewerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
