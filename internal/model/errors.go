package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Room errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNameRequired = errors.New("room name is required")
	ErrInvalidCapacity  = errors.New("max players must be at least 1")
	ErrRoomNotWaiting   = errors.New("room is not accepting players")
	ErrRoomFull         = errors.New("room is full")
	ErrBadRoomPassword  = errors.New("incorrect room password")
	ErrAlreadyJoined    = errors.New("player is already in the room")
	ErrNotHost          = errors.New("player is not the host")
	ErrNotMember        = errors.New("player is not in the room")
	ErrGameInProgress   = errors.New("game is in progress")
	ErrNoGameInProgress = errors.New("no game in progress")

	// Save game errors
	ErrSaveNotFound = errors.New("save game not found")
	ErrSaveTooLarge = errors.New("save game data too large")
	ErrInvalidSlot  = errors.New("invalid save slot name")
)
