package ws

import (
	"log/slog"
	"sync"

	"roomhub/internal/model"
)

// broadcastBuffer bounds how many undelivered frames a hub queues before
// publishers start dropping
const broadcastBuffer = 256

// Hub manages the set of clients subscribed to one event scope (a single
// room, or the global scope) and fans frames out to them
type Hub struct {
	name string

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	clients map[*Client]struct{}

	logger *slog.Logger
}

func newHub(name string, logger *slog.Logger) *Hub {
	h := &Hub{
		name:       name,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
		logger:     logger.With(slog.String("component", "hub"), slog.String("hub", name)),
	}
	go h.run()
	return h
}

// run owns h.clients; all mutation happens on this goroutine
func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}

		case client := <-h.unregister:
			delete(h.clients, client)

		case frame := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- frame:
				default:
					// Slow consumer; drop the frame rather than stall
					// every other subscriber
					h.logger.Warn("dropping frame for slow client",
						slog.String("client_id", client.id))
				}
			}

		case <-h.done:
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues a frame for delivery to every registered client. It
// never blocks; when the hub's queue is full the frame is dropped.
func (h *Hub) Broadcast(frame []byte) {
	select {
	case h.broadcast <- frame:
	case <-h.done:
	default:
		h.logger.Warn("hub queue full, dropping frame")
	}
}

// Close stops the hub's run loop
func (h *Hub) Close() {
	close(h.done)
}

// HubManager tracks the global hub and one hub per active room
type HubManager struct {
	mu     sync.RWMutex
	global *Hub
	rooms  map[model.RoomID]*Hub
	logger *slog.Logger
}

// NewHubManager creates a HubManager with a running global hub
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		global: newHub("global", logger),
		rooms:  make(map[model.RoomID]*Hub),
		logger: logger,
	}
}

// Global returns the hub every connected client belongs to
func (m *HubManager) Global() *Hub {
	return m.global
}

// Room returns the hub for a room, creating it on first use
func (m *HubManager) Room(roomID model.RoomID) *Hub {
	m.mu.RLock()
	h, ok := m.rooms[roomID]
	m.mu.RUnlock()
	if ok {
		return h
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.rooms[roomID]; ok {
		return h
	}
	h = newHub(string(roomID), m.logger)
	m.rooms[roomID] = h
	return h
}

// lookupRoom returns the room's hub only if one exists, never creating one
func (m *HubManager) lookupRoom(roomID model.RoomID) (*Hub, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.rooms[roomID]
	return h, ok
}

// RemoveRoom tears down a room's hub once the room no longer exists
func (m *HubManager) RemoveRoom(roomID model.RoomID) {
	m.mu.Lock()
	h, ok := m.rooms[roomID]
	if ok {
		delete(m.rooms, roomID)
	}
	m.mu.Unlock()
	if ok {
		h.Close()
	}
}

// Close tears down every hub
func (m *HubManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.global.Close()
	for id, h := range m.rooms {
		h.Close()
		delete(m.rooms, id)
	}
}
