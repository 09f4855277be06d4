package registry

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"roomhub/internal/dependencies/clock"
	"roomhub/internal/dependencies/random"
	"roomhub/internal/model"
)

const (
	// RoomIDLength is the length of generated room ids
	RoomIDLength = 6
	// RoomIDAlphabet is the characters used in room ids (avoids confusing chars)
	RoomIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Registry is the authoritative in-memory store of all active rooms.
// It lives for the duration of the process; rooms are never persisted.
//
// Locking discipline: the registry mutex guards only the id->entry map
// (insert, remove, lookup). Each entry carries its own mutex serializing
// mutations of that room, so operations on different rooms never block
// one another. Lock order is always registry then entry; an emptying
// leave marks the room closed under the entry lock before taking the
// registry lock to unlink it.
type Registry struct {
	mu    sync.RWMutex
	rooms map[model.RoomID]*entry

	pub    Publisher
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
}

type entry struct {
	mu   sync.Mutex
	room *model.Room
}

// RoomSettings holds the creator-supplied configuration for a new room
type RoomSettings struct {
	Name       string
	MaxPlayers int
	Public     bool
	Password   string
}

// New creates an empty Registry
func New(pub Publisher, clock clock.Clock, random random.Random, logger *slog.Logger) *Registry {
	return &Registry{
		rooms:  make(map[model.RoomID]*entry),
		pub:    pub,
		clock:  clock,
		random: random,
		logger: logger.With(slog.String("component", "registry")),
	}
}

// CreateRoom registers a new room with the creator as host and sole member.
// Public rooms are announced to all connected clients.
func (r *Registry) CreateRoom(creator model.Player, settings RoomSettings, profile model.MemberProfile) (*model.Room, error) {
	if strings.TrimSpace(settings.Name) == "" {
		return nil, model.ErrRoomNameRequired
	}
	if settings.MaxPlayers < 1 {
		return nil, model.ErrInvalidCapacity
	}

	now := r.clock.Now()
	room := &model.Room{
		Name:       strings.TrimSpace(settings.Name),
		HostID:     creator.ID,
		Members:    []model.RoomMember{newMember(creator, profile, now)},
		MaxPlayers: settings.MaxPlayers,
		Public:     settings.Public,
		Password:   settings.Password,
		Status:     model.RoomStatusWaiting,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	r.mu.Lock()
	for {
		id := model.RoomID(r.random.String(RoomIDLength, RoomIDAlphabet))
		if _, taken := r.rooms[id]; !taken {
			room.ID = id
			break
		}
	}
	r.rooms[room.ID] = &entry{room: room}
	r.mu.Unlock()

	r.logger.Info("room created",
		slog.String("room_id", string(room.ID)),
		slog.String("host", string(creator.ID)),
		slog.Int("max_players", room.MaxPlayers),
		slog.Bool("public", room.Public))

	if room.Public {
		r.pub.PublishGlobal(model.EventRoomCreated, room.Snapshot())
	}

	return room.Clone(), nil
}

// GetRoom returns a copy of the room, or ErrRoomNotFound
func (r *Registry) GetRoom(id model.RoomID) (*model.Room, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.room.Status == model.RoomStatusClosed {
		return nil, model.ErrRoomNotFound
	}
	return e.room.Clone(), nil
}

// ListPublicWaiting returns copies of all public rooms still accepting
// players, newest first. The listing never observes a half-applied
// mutation: each room is copied under its own lock.
func (r *Registry) ListPublicWaiting() []*model.Room {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.rooms))
	for _, e := range r.rooms {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	rooms := make([]*model.Room, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if e.room.Public && e.room.Status == model.RoomStatusWaiting {
			rooms = append(rooms, e.room.Clone())
		}
		e.mu.Unlock()
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].CreatedAt.After(rooms[j].CreatedAt)
	})
	return rooms
}

// Join adds a player to a room and broadcasts the updated snapshot to the
// room's subscribers. The supplied password must match the room's, if set.
func (r *Registry) Join(id model.RoomID, player model.Player, profile model.MemberProfile, password string) (*model.Room, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	room := e.room
	switch {
	case room.Status == model.RoomStatusClosed:
		return nil, model.ErrRoomNotFound
	case room.Status != model.RoomStatusWaiting:
		return nil, model.ErrRoomNotWaiting
	case room.IsFull():
		return nil, model.ErrRoomFull
	case room.Password != "" && room.Password != password:
		// Plain comparison: room passwords are a casual lobby latch,
		// not a credential
		return nil, model.ErrBadRoomPassword
	case room.Member(player.ID) != nil:
		return nil, model.ErrAlreadyJoined
	}

	now := r.clock.Now()
	members := make([]model.RoomMember, len(room.Members), len(room.Members)+1)
	copy(members, room.Members)
	room.Members = append(members, newMember(player, profile, now))
	room.UpdatedAt = now

	r.logger.Info("player joined",
		slog.String("room_id", string(room.ID)),
		slog.String("player", string(player.ID)),
		slog.Int("members", len(room.Members)))

	r.pub.PublishToRoom(room.ID, model.EventPlayerJoined, room.Snapshot())
	return room.Clone(), nil
}

// Leave removes a player from a room. Leaving a room the player is not a
// member of is a no-op, since disconnect-driven leaves race explicit ones.
// The last member leaving closes and deletes the room; a departing host
// hands off to the earliest-joined survivor.
//
// The returned room is nil when the room was deleted.
func (r *Registry) Leave(id model.RoomID, playerID model.PlayerID) (*model.Room, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	room := e.room
	if room.Status == model.RoomStatusClosed {
		e.mu.Unlock()
		return nil, model.ErrRoomNotFound
	}

	idx := -1
	for i := range room.Members {
		if room.Members[i].PlayerID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		snap := room.Clone()
		e.mu.Unlock()
		return snap, nil
	}

	now := r.clock.Now()
	members := make([]model.RoomMember, 0, len(room.Members)-1)
	members = append(members, room.Members[:idx]...)
	members = append(members, room.Members[idx+1:]...)
	room.Members = members
	room.UpdatedAt = now

	if len(room.Members) == 0 {
		// Close before unlinking so a concurrent join that already
		// holds a reference to this entry fails rather than reviving
		// the room.
		room.Status = model.RoomStatusClosed
		e.mu.Unlock()

		if r.unlink(id, e) {
			r.logger.Info("room closed",
				slog.String("room_id", string(id)),
				slog.String("last_member", string(playerID)))
			r.pub.PublishGlobal(model.EventRoomClosed, model.RoomClosedPayload{RoomID: id})
		}
		return nil, nil
	}

	if room.HostID == playerID {
		next := room.NextHost()
		room.HostID = next.PlayerID
		r.logger.Info("host migrated",
			slog.String("room_id", string(room.ID)),
			slog.String("old_host", string(playerID)),
			slog.String("new_host", string(next.PlayerID)))
	}

	r.logger.Info("player left",
		slog.String("room_id", string(room.ID)),
		slog.String("player", string(playerID)),
		slog.Int("members", len(room.Members)))

	r.pub.PublishToRoom(room.ID, model.EventPlayerLeft, room.Snapshot())
	snap := room.Clone()
	e.mu.Unlock()
	return snap, nil
}

// StartGame transitions a waiting room to in-game. Only the host may start.
func (r *Registry) StartGame(id model.RoomID, playerID model.PlayerID) (*model.Room, error) {
	return r.transition(id, playerID, model.RoomStatusWaiting, model.RoomStatusInGame, model.EventGameStarted, model.ErrGameInProgress)
}

// EndGame transitions an in-game room back to waiting. Only the host may end.
func (r *Registry) EndGame(id model.RoomID, playerID model.PlayerID) (*model.Room, error) {
	return r.transition(id, playerID, model.RoomStatusInGame, model.RoomStatusWaiting, model.EventGameEnded, model.ErrNoGameInProgress)
}

func (r *Registry) transition(id model.RoomID, playerID model.PlayerID, from, to model.RoomStatus, event model.EventType, stateErr error) (*model.Room, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	room := e.room
	if room.Status == model.RoomStatusClosed {
		return nil, model.ErrRoomNotFound
	}
	if room.HostID != playerID {
		return nil, model.ErrNotHost
	}
	if room.Status != from {
		return nil, stateErr
	}

	room.Status = to
	room.UpdatedAt = r.clock.Now()

	r.logger.Info("room status changed",
		slog.String("room_id", string(room.ID)),
		slog.String("status", string(to)))

	r.pub.PublishToRoom(room.ID, event, room.Snapshot())
	return room.Clone(), nil
}

// Relay forwards an opaque payload to a room's subscribers on behalf of a
// member. The payload is not interpreted. Relayed events hold the room lock
// while publishing, so they interleave with membership events in a single
// well-defined order.
func (r *Registry) Relay(id model.RoomID, playerID model.PlayerID, event model.EventType, payload any) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.room.Status == model.RoomStatusClosed {
		return model.ErrRoomNotFound
	}
	if e.room.Member(playerID) == nil {
		return model.ErrNotMember
	}

	r.pub.PublishToRoom(id, event, payload)
	return nil
}

// DeleteRoom removes a room outright and announces the closure. Deleting
// an absent room is a no-op and emits nothing.
func (r *Registry) DeleteRoom(id model.RoomID) {
	r.mu.Lock()
	e, ok := r.rooms[id]
	if ok {
		delete(r.rooms, id)
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	e.mu.Lock()
	e.room.Status = model.RoomStatusClosed
	e.mu.Unlock()

	r.logger.Info("room deleted", slog.String("room_id", string(id)))
	r.pub.PublishGlobal(model.EventRoomClosed, model.RoomClosedPayload{RoomID: id})
}

// lookup finds the live entry for a room id
func (r *Registry) lookup(id model.RoomID) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return e, nil
}

// unlink removes the entry from the map if it is still the registered one.
// Reports whether this call performed the removal, so the closure event is
// emitted exactly once even when racing DeleteRoom.
func (r *Registry) unlink(id model.RoomID, e *entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rooms[id]
	if !ok || cur != e {
		return false
	}
	delete(r.rooms, id)
	return true
}

func newMember(player model.Player, profile model.MemberProfile, joinedAt time.Time) model.RoomMember {
	name := profile.Name
	if name == "" {
		name = player.DisplayName
	}
	return model.RoomMember{
		PlayerID:       player.ID,
		Name:           name,
		CharacterClass: profile.CharacterClass,
		Level:          profile.Level,
		JoinedAt:       joinedAt,
	}
}
