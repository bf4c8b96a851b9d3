package realtime

import (
	"sync"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active connections per company channel and broadcasts fleet
// events (task created/updated, fleet task lifecycle) to them.
type Hub struct {
	mu                 sync.RWMutex
	companyIDToClients map[int]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			companyIDToClients: make(map[int]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Register adds a client under a company channel.
func (h *Hub) Register(companyID int, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.companyIDToClients[companyID]; !ok {
		h.companyIDToClients[companyID] = make(map[Client]struct{})
	}
	h.companyIDToClients[companyID][client] = struct{}{}
}

// Unregister removes a client; if the channel has no more clients, cleans up map.
func (h *Hub) Unregister(companyID int, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.companyIDToClients[companyID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.companyIDToClients, companyID)
		}
	}
}

// Broadcast sends a message to all clients on a company channel.
func (h *Hub) Broadcast(companyID int, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := h.companyIDToClients[companyID]
	for c := range clients {
		// A failed write is left for the handler's reader loop to clean up.
		_ = c.Send(message)
	}
}
