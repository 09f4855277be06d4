package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"roomhub/internal/model"
	"roomhub/internal/registry"
)

// Gateway-local ack and error event types. These are per-connection
// responses, not broadcasts.
const (
	eventError        model.EventType = "error"
	eventSubscribed   model.EventType = "subscribed"
	eventUnsubscribed model.EventType = "unsubscribed"
	eventRoomJoined   model.EventType = "room-joined"
	eventRoomLeft     model.EventType = "room-left"
	eventRoomList     model.EventType = "room-list"
)

// Action is the frame format for every client-to-server message
type Action struct {
	Action string          `json:"action"`
	RoomID model.RoomID    `json:"roomId,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type createRoomAction struct {
	Name       string              `json:"name"`
	MaxPlayers int                 `json:"maxPlayers"`
	IsPublic   bool                `json:"isPublic"`
	Password   string              `json:"password,omitempty"`
	Profile    model.MemberProfile `json:"profile"`
}

type joinRoomAction struct {
	Password string              `json:"password,omitempty"`
	Profile  model.MemberProfile `json:"profile"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// relayPayload wraps a relayed frame with its sender so receivers can
// attribute it
type relayPayload struct {
	PlayerID model.PlayerID  `json:"playerId"`
	Name     string          `json:"name"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// Gateway upgrades authenticated HTTP requests to WebSocket connections
// and translates inbound actions into registry calls. Each connection
// tracks the rooms joined through it; when the connection drops the
// gateway leaves those rooms on the player's behalf, so a vanished client
// is indistinguishable from one that left cleanly.
type Gateway struct {
	registry *registry.Registry
	hubs     *HubManager
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewGateway creates a Gateway over the given registry and hubs
func NewGateway(reg *registry.Registry, hubs *HubManager, logger *slog.Logger) *Gateway {
	return &Gateway{
		registry: reg,
		hubs:     hubs,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "gateway")),
	}
}

// ServeWS upgrades the request and runs the connection. The caller has
// already authenticated the player.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request, player model.Player) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("upgrade failed", slog.Any("error", err))
		return
	}

	client := newClient(g, conn, player)
	g.hubs.Global().Register(client)

	g.logger.Info("client connected",
		slog.String("client_id", client.id),
		slog.String("player_id", string(player.ID)))

	go client.writePump()
	go client.readPump()
}

// disconnect unwinds a dropped connection: unregister from every hub and
// leave every room this connection joined
func (g *Gateway) disconnect(c *Client) {
	subs, joined := c.snapshotState()

	g.hubs.Global().Unregister(c)
	for _, roomID := range subs {
		if h, ok := g.hubs.lookupRoom(roomID); ok {
			h.Unregister(c)
		}
	}
	for _, roomID := range joined {
		if _, err := g.registry.Leave(roomID, c.playerID); err != nil {
			g.logger.Warn("compensating leave failed",
				slog.String("room_id", string(roomID)),
				slog.Any("error", err))
		}
	}
	close(c.send)

	g.logger.Info("client disconnected", slog.String("client_id", c.id))
}

// handleAction dispatches one inbound frame
func (g *Gateway) handleAction(c *Client, raw []byte) {
	var action Action
	if err := json.Unmarshal(raw, &action); err != nil {
		g.sendError(c, "", "INVALID_REQUEST", "malformed action frame")
		return
	}

	switch action.Action {
	case "subscribe":
		g.handleSubscribe(c, action)
	case "unsubscribe":
		g.handleUnsubscribe(c, action)
	case "create-room":
		g.handleCreateRoom(c, action)
	case "join-room":
		g.handleJoinRoom(c, action)
	case "leave-room":
		g.handleLeaveRoom(c, action)
	case "list-rooms":
		g.handleListRooms(c)
	case "chat-message":
		g.handleRelay(c, action, model.EventChatMessage)
	case "game-event":
		g.handleRelay(c, action, model.EventGameEvent)
	default:
		g.sendError(c, action.RoomID, "INVALID_REQUEST", "unknown action: "+action.Action)
	}
}

func (g *Gateway) handleSubscribe(c *Client, action Action) {
	if _, err := g.registry.GetRoom(action.RoomID); err != nil {
		g.sendRegistryError(c, action.RoomID, err)
		return
	}
	c.subscribe(action.RoomID)
	g.send(c, Envelope{Event: eventSubscribed, RoomID: action.RoomID})
}

func (g *Gateway) handleUnsubscribe(c *Client, action Action) {
	c.unsubscribe(action.RoomID)
	g.send(c, Envelope{Event: eventUnsubscribed, RoomID: action.RoomID})
}

func (g *Gateway) handleCreateRoom(c *Client, action Action) {
	var req createRoomAction
	if err := json.Unmarshal(action.Data, &req); err != nil {
		g.sendError(c, "", "INVALID_REQUEST", "malformed create-room data")
		return
	}

	room, err := g.registry.CreateRoom(c.player, registry.RoomSettings{
		Name:       req.Name,
		MaxPlayers: req.MaxPlayers,
		Public:     req.IsPublic,
		Password:   req.Password,
	}, req.Profile)
	if err != nil {
		g.sendRegistryError(c, "", err)
		return
	}

	c.subscribe(room.ID)
	c.markJoined(room.ID)
	g.send(c, Envelope{Event: eventRoomJoined, RoomID: room.ID, Data: room.Snapshot()})
}

func (g *Gateway) handleJoinRoom(c *Client, action Action) {
	var req joinRoomAction
	if len(action.Data) > 0 {
		if err := json.Unmarshal(action.Data, &req); err != nil {
			g.sendError(c, action.RoomID, "INVALID_REQUEST", "malformed join-room data")
			return
		}
	}

	room, err := g.registry.Join(action.RoomID, c.player, req.Profile, req.Password)
	if err != nil {
		g.sendRegistryError(c, action.RoomID, err)
		return
	}

	c.subscribe(room.ID)
	c.markJoined(room.ID)
	g.send(c, Envelope{Event: eventRoomJoined, RoomID: room.ID, Data: room.Snapshot()})
}

func (g *Gateway) handleLeaveRoom(c *Client, action Action) {
	if _, err := g.registry.Leave(action.RoomID, c.playerID); err != nil {
		g.sendRegistryError(c, action.RoomID, err)
		return
	}
	c.markLeft(action.RoomID)
	c.unsubscribe(action.RoomID)
	g.send(c, Envelope{Event: eventRoomLeft, RoomID: action.RoomID})
}

func (g *Gateway) handleListRooms(c *Client) {
	rooms := g.registry.ListPublicWaiting()
	snapshots := make([]model.RoomSnapshot, 0, len(rooms))
	for _, room := range rooms {
		snapshots = append(snapshots, room.Snapshot())
	}
	g.send(c, Envelope{Event: eventRoomList, Data: snapshots})
}

func (g *Gateway) handleRelay(c *Client, action Action, event model.EventType) {
	err := g.registry.Relay(action.RoomID, c.playerID, event, relayPayload{
		PlayerID: c.playerID,
		Name:     c.player.DisplayName,
		Data:     action.Data,
	})
	if err != nil {
		g.sendRegistryError(c, action.RoomID, err)
	}
}

// send delivers a per-connection envelope, dropping it if the client's
// queue is full
func (g *Gateway) send(c *Client, env Envelope) {
	frame, err := json.Marshal(env)
	if err != nil {
		g.logger.Error("marshal envelope", slog.Any("error", err))
		return
	}
	select {
	case c.send <- frame:
	default:
		g.logger.Warn("dropping frame for slow client", slog.String("client_id", c.id))
	}
}

func (g *Gateway) sendError(c *Client, roomID model.RoomID, code, message string) {
	g.send(c, Envelope{Event: eventError, RoomID: roomID, Data: errorPayload{Code: code, Message: message}})
}

func (g *Gateway) sendRegistryError(c *Client, roomID model.RoomID, err error) {
	g.sendError(c, roomID, errorCode(err), err.Error())
}

// errorCode maps domain errors to stable client-facing codes
func errorCode(err error) string {
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return "ROOM_NOT_FOUND"
	case errors.Is(err, model.ErrRoomNotWaiting):
		return "ROOM_NOT_WAITING"
	case errors.Is(err, model.ErrRoomFull):
		return "ROOM_FULL"
	case errors.Is(err, model.ErrBadRoomPassword):
		return "BAD_ROOM_PASSWORD"
	case errors.Is(err, model.ErrAlreadyJoined):
		return "ALREADY_JOINED"
	case errors.Is(err, model.ErrNotHost):
		return "NOT_HOST"
	case errors.Is(err, model.ErrNotMember):
		return "NOT_MEMBER"
	case errors.Is(err, model.ErrRoomNameRequired), errors.Is(err, model.ErrInvalidCapacity):
		return "VALIDATION"
	case errors.Is(err, model.ErrGameInProgress):
		return "GAME_IN_PROGRESS"
	case errors.Is(err, model.ErrNoGameInProgress):
		return "NO_GAME_IN_PROGRESS"
	default:
		return "INTERNAL_ERROR"
	}
}
