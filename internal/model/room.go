package model

import "time"

// RoomID is a short human-readable identifier for joining rooms
type RoomID string

// RoomStatus represents the lifecycle state of a room
type RoomStatus string

const (
	RoomStatusWaiting RoomStatus = "waiting" // Open for joins
	RoomStatusInGame  RoomStatus = "in-game" // Game running, joins rejected
	RoomStatusClosed  RoomStatus = "closed"  // Emptied and removed from the registry
)

// MemberProfile is the display metadata a client supplies when creating or
// joining a room. None of it is security-relevant.
type MemberProfile struct {
	Name           string `json:"name,omitempty"`
	CharacterClass string `json:"characterClass,omitempty"`
	Level          int    `json:"level,omitempty"`
}

// RoomMember represents a player's membership in a room.
// Members are replaced on change, never mutated in place.
type RoomMember struct {
	PlayerID       PlayerID
	Name           string
	CharacterClass string
	Level          int
	JoinedAt       time.Time
}

// Room represents a group of players waiting to start or playing a session.
// The Password field is a casual lobby latch, not a credential; it must
// never reach a client-facing snapshot.
type Room struct {
	ID         RoomID
	Name       string
	HostID     PlayerID
	Members    []RoomMember // join order
	MaxPlayers int
	Public     bool
	Password   string
	Status     RoomStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Member returns the member with the given player ID, or nil if not found
func (r *Room) Member(id PlayerID) *RoomMember {
	for i := range r.Members {
		if r.Members[i].PlayerID == id {
			return &r.Members[i]
		}
	}
	return nil
}

// IsFull reports whether the room has reached its player capacity
func (r *Room) IsFull() bool {
	return len(r.Members) >= r.MaxPlayers
}

// NextHost returns the member with the earliest join time, breaking ties
// by join order. Host succession is FIFO: the oldest surviving member
// takes over when the host leaves.
func (r *Room) NextHost() *RoomMember {
	if len(r.Members) == 0 {
		return nil
	}
	next := &r.Members[0]
	for i := 1; i < len(r.Members); i++ {
		if r.Members[i].JoinedAt.Before(next.JoinedAt) {
			next = &r.Members[i]
		}
	}
	return next
}

// Clone returns a deep copy of the room
func (r *Room) Clone() *Room {
	c := *r
	c.Members = make([]RoomMember, len(r.Members))
	copy(c.Members, r.Members)
	return &c
}

// MemberSnapshot is the client-visible view of a room member
type MemberSnapshot struct {
	Identity       string    `json:"identity"`
	PlayerName     string    `json:"playerName"`
	CharacterClass string    `json:"characterClass,omitempty"`
	Level          int       `json:"level,omitempty"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// HostSnapshot identifies the room host in a snapshot
type HostSnapshot struct {
	Identity   string `json:"identity"`
	PlayerName string `json:"playerName"`
}

// RoomSnapshot is the client-visible view of a room at a point in time.
// It has no password field, so a password can never be serialized.
type RoomSnapshot struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Host       HostSnapshot     `json:"host"`
	Members    []MemberSnapshot `json:"members"`
	MaxPlayers int              `json:"maxPlayers"`
	Public     bool             `json:"isPublic"`
	Status     string           `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// Snapshot builds the client-visible view of the room
func (r *Room) Snapshot() RoomSnapshot {
	members := make([]MemberSnapshot, len(r.Members))
	for i, m := range r.Members {
		members[i] = MemberSnapshot{
			Identity:       string(m.PlayerID),
			PlayerName:     m.Name,
			CharacterClass: m.CharacterClass,
			Level:          m.Level,
			JoinedAt:       m.JoinedAt,
		}
	}

	var host HostSnapshot
	if h := r.Member(r.HostID); h != nil {
		host = HostSnapshot{Identity: string(h.PlayerID), PlayerName: h.Name}
	}

	return RoomSnapshot{
		ID:         string(r.ID),
		Name:       r.Name,
		Host:       host,
		Members:    members,
		MaxPlayers: r.MaxPlayers,
		Public:     r.Public,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}
