package registry

import "roomhub/internal/model"

// Publisher is the fan-out contract the registry pushes events through.
// Implementations must not block: both methods are called while the
// originating room's lock is held, and the per-room delivery order of
// events equals the order of these calls.
//
// Delivery is at-most-once, best-effort. Clients that connect after an
// event was published never see it; they re-fetch current state instead.
type Publisher interface {
	// PublishToRoom delivers the event to every connection subscribed
	// to the room
	PublishToRoom(roomID model.RoomID, event model.EventType, payload any)

	// PublishGlobal delivers the event to every connection
	PublishGlobal(event model.EventType, payload any)
}

// NopPublisher discards all events
type NopPublisher struct{}

var _ Publisher = NopPublisher{}

func (NopPublisher) PublishToRoom(model.RoomID, model.EventType, any) {}

func (NopPublisher) PublishGlobal(model.EventType, any) {}
