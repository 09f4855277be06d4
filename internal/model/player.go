package model

import "time"

// PlayerID is the stable identity of a player across the system
type PlayerID string

// Player represents a participant as established by the identity provider
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool // true for unregistered players
	CreatedAt   time.Time
}

// RegisteredPlayer extends Player with account credentials.
// Stored separately so the password hash never travels with session data.
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SaveGame is an opaque persisted save blob, keyed by player and slot name.
// The server never interprets the data.
type SaveGame struct {
	PlayerID  PlayerID
	Slot      string
	Data      []byte
	UpdatedAt time.Time
}
