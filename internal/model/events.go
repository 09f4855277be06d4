package model

// EventType identifies the type of event pushed to clients
type EventType string

const (
	// Global events, delivered to every connected client
	EventRoomCreated EventType = "room-created"
	EventRoomClosed  EventType = "room-closed"

	// Room-scoped events, delivered to subscribers of the room
	EventPlayerJoined EventType = "player-joined"
	EventPlayerLeft   EventType = "player-left"
	EventGameStarted  EventType = "game-started"
	EventGameEnded    EventType = "game-ended"

	// Opaque relay events; the server forwards payloads without
	// interpreting them
	EventChatMessage EventType = "chat-message"
	EventGameEvent   EventType = "game-event"
)

// RoomClosedPayload is the payload for room-closed events
type RoomClosedPayload struct {
	RoomID RoomID `json:"roomId"`
}
