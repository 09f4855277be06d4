package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"roomhub/internal/model"
)

// PlayerResponse is the client-visible shape of a player
type PlayerResponse struct {
	ID          model.PlayerID `json:"id"`
	DisplayName string         `json:"displayName"`
	IsGuest     bool           `json:"isGuest"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// AuthResponse carries a session token alongside the player
type AuthResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Player    PlayerResponse `json:"player"`
}

// SaveMetaResponse describes a save slot without its blob
type SaveMetaResponse struct {
	Slot      string    `json:"slot"`
	Size      int       `json:"size"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoomListResponse wraps the public room listing
type RoomListResponse struct {
	Rooms []model.RoomSnapshot `json:"rooms"`
}

// SaveListResponse wraps the save slot listing
type SaveListResponse struct {
	Saves []SaveMetaResponse `json:"saves"`
}

func playerResponse(p model.Player) PlayerResponse {
	return PlayerResponse{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
		CreatedAt:   p.CreatedAt,
	}
}

// writeJSON serializes a response body with the given status
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("write response", slog.Any("error", err))
	}
}
