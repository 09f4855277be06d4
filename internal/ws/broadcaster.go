package ws

import (
	"encoding/json"
	"log/slog"

	"roomhub/internal/model"
	"roomhub/internal/registry"
)

// Envelope is the frame format for every server-to-client message
type Envelope struct {
	Event  model.EventType `json:"event"`
	RoomID model.RoomID    `json:"roomId,omitempty"`
	Data   any             `json:"data,omitempty"`
}

// Broadcaster adapts the hub manager to the event publisher the room
// registry pushes through. Both publish methods only marshal and enqueue,
// so they are safe to call with room locks held.
type Broadcaster struct {
	hubs   *HubManager
	logger *slog.Logger
}

var _ registry.Publisher = (*Broadcaster)(nil)

// NewBroadcaster creates a Broadcaster over the given hubs
func NewBroadcaster(hubs *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubs:   hubs,
		logger: logger.With(slog.String("component", "broadcaster")),
	}
}

// PublishToRoom fans an event out to the room's subscribers
func (b *Broadcaster) PublishToRoom(roomID model.RoomID, event model.EventType, payload any) {
	frame, err := json.Marshal(Envelope{Event: event, RoomID: roomID, Data: payload})
	if err != nil {
		b.logger.Error("marshal event", slog.String("event", string(event)), slog.Any("error", err))
		return
	}
	b.hubs.Room(roomID).Broadcast(frame)
}

// PublishGlobal fans an event out to every connected client
func (b *Broadcaster) PublishGlobal(event model.EventType, payload any) {
	frame, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		b.logger.Error("marshal event", slog.String("event", string(event)), slog.Any("error", err))
		return
	}
	b.hubs.Global().Broadcast(frame)

	// A closed room never produces events again, so its hub can go with it
	if event == model.EventRoomClosed {
		if p, ok := payload.(model.RoomClosedPayload); ok {
			b.hubs.RemoveRoom(p.RoomID)
		}
	}
}
