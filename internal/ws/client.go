package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"roomhub/internal/model"
)

const (
	// Time allowed to write a frame to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Ping period; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size
	maxMessageSize = 64 * 1024

	sendBufferSize = 256
)

// Client is one WebSocket connection with its subscriptions and the rooms
// it joined over this connection
type Client struct {
	id       string
	playerID model.PlayerID
	player   model.Player

	conn    *websocket.Conn
	send    chan []byte
	gateway *Gateway
	logger  *slog.Logger

	mu            sync.Mutex
	subscriptions map[model.RoomID]struct{}
	joined        map[model.RoomID]struct{}
}

func newClient(gateway *Gateway, conn *websocket.Conn, player model.Player) *Client {
	id := uuid.NewString()
	return &Client{
		id:            id,
		playerID:      player.ID,
		player:        player,
		conn:          conn,
		send:          make(chan []byte, sendBufferSize),
		gateway:       gateway,
		logger:        gateway.logger.With(slog.String("client_id", id), slog.String("player_id", string(player.ID))),
		subscriptions: make(map[model.RoomID]struct{}),
		joined:        make(map[model.RoomID]struct{}),
	}
}

// subscribe registers the client with a room hub, tracking the membership
// so disconnect can undo it
func (c *Client) subscribe(roomID model.RoomID) {
	c.mu.Lock()
	_, already := c.subscriptions[roomID]
	c.subscriptions[roomID] = struct{}{}
	c.mu.Unlock()
	if !already {
		c.gateway.hubs.Room(roomID).Register(c)
	}
}

func (c *Client) unsubscribe(roomID model.RoomID) {
	c.mu.Lock()
	_, ok := c.subscriptions[roomID]
	delete(c.subscriptions, roomID)
	c.mu.Unlock()
	if !ok {
		return
	}
	// Lookup only: the hub may already be gone if the room closed
	if h, exists := c.gateway.hubs.lookupRoom(roomID); exists {
		h.Unregister(c)
	}
}

func (c *Client) markJoined(roomID model.RoomID) {
	c.mu.Lock()
	c.joined[roomID] = struct{}{}
	c.mu.Unlock()
}

func (c *Client) markLeft(roomID model.RoomID) {
	c.mu.Lock()
	delete(c.joined, roomID)
	c.mu.Unlock()
}

// snapshotState returns the rooms to unwind when the connection drops
func (c *Client) snapshotState() (subs, joined []model.RoomID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.subscriptions {
		subs = append(subs, id)
	}
	for id := range c.joined {
		joined = append(joined, id)
	}
	return subs, joined
}

// readPump reads client actions until the connection drops, then unwinds
// the connection's room state
func (c *Client) readPump() {
	defer func() {
		c.gateway.disconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read error", slog.Any("error", err))
			}
			return
		}
		c.gateway.handleAction(c, raw)
	}
}

// writePump delivers queued frames and keepalive pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
