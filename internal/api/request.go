package api

import "roomhub/internal/model"

// GuestRequest is the body for POST /players/guest
type GuestRequest struct {
	DisplayName string `json:"displayName"`
}

// RegisterRequest is the body for POST /players/register
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// LoginRequest is the body for POST /players/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateRoomRequest is the body for POST /rooms
type CreateRoomRequest struct {
	Name       string              `json:"name"`
	MaxPlayers int                 `json:"maxPlayers"`
	IsPublic   bool                `json:"isPublic"`
	Password   string              `json:"password,omitempty"`
	Profile    model.MemberProfile `json:"profile"`
}

// JoinRoomRequest is the body for POST /rooms/{id}/join
type JoinRoomRequest struct {
	Password string              `json:"password,omitempty"`
	Profile  model.MemberProfile `json:"profile"`
}
