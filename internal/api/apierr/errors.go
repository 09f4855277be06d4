package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"roomhub/internal/model"
	"roomhub/internal/services/auth"
)

// APIError is the JSON error body returned by every failing endpoint
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type httpError struct {
	status int
	body   APIError
}

// mapping resolves domain errors to wire errors in one place so handlers
// never pick status codes themselves
var mapping = []struct {
	err  error
	resp httpError
}{
	{model.ErrRoomNotFound, httpError{http.StatusNotFound, APIError{"ROOM_NOT_FOUND", "room not found"}}},
	{model.ErrRoomNotWaiting, httpError{http.StatusConflict, APIError{"ROOM_NOT_WAITING", "room is not accepting players"}}},
	{model.ErrRoomFull, httpError{http.StatusConflict, APIError{"ROOM_FULL", "room is full"}}},
	{model.ErrBadRoomPassword, httpError{http.StatusForbidden, APIError{"BAD_ROOM_PASSWORD", "incorrect room password"}}},
	{model.ErrAlreadyJoined, httpError{http.StatusConflict, APIError{"ALREADY_JOINED", "player is already in the room"}}},
	{model.ErrNotHost, httpError{http.StatusForbidden, APIError{"NOT_HOST", "only the host may do that"}}},
	{model.ErrNotMember, httpError{http.StatusForbidden, APIError{"NOT_MEMBER", "player is not in the room"}}},
	{model.ErrRoomNameRequired, httpError{http.StatusBadRequest, APIError{"VALIDATION", "room name is required"}}},
	{model.ErrInvalidCapacity, httpError{http.StatusBadRequest, APIError{"VALIDATION", "max players must be at least 1"}}},
	{model.ErrGameInProgress, httpError{http.StatusConflict, APIError{"GAME_IN_PROGRESS", "game is in progress"}}},
	{model.ErrNoGameInProgress, httpError{http.StatusConflict, APIError{"NO_GAME_IN_PROGRESS", "no game in progress"}}},
	{model.ErrPlayerNotFound, httpError{http.StatusNotFound, APIError{"PLAYER_NOT_FOUND", "player not found"}}},
	{model.ErrSaveNotFound, httpError{http.StatusNotFound, APIError{"SAVE_NOT_FOUND", "save game not found"}}},
	{model.ErrSaveTooLarge, httpError{http.StatusBadRequest, APIError{"SAVE_TOO_LARGE", "save game data too large"}}},
	{model.ErrInvalidSlot, httpError{http.StatusBadRequest, APIError{"INVALID_SLOT", "invalid save slot name"}}},
	{auth.ErrUsernameExists, httpError{http.StatusConflict, APIError{"USERNAME_EXISTS", "username already exists"}}},
	{auth.ErrInvalidCredentials, httpError{http.StatusUnauthorized, APIError{"INVALID_CREDENTIALS", "invalid credentials"}}},
	{auth.ErrInvalidSession, httpError{http.StatusUnauthorized, APIError{"UNAUTHORIZED", "invalid or expired session"}}},
}

// resolve maps a domain error to its wire form, defaulting to a 500
func resolve(err error) httpError {
	for _, m := range mapping {
		if errors.Is(err, m.err) {
			return m.resp
		}
	}
	return httpError{http.StatusInternalServerError, APIError{"INTERNAL_ERROR", "internal error"}}
}

// Write serializes the mapped error to the response
func Write(w http.ResponseWriter, err error) {
	he := resolve(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.body)
}

// WriteBadRequest writes a 400 with the given message, for request-shape
// failures that never reach the domain
func WriteBadRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(APIError{Code: "INVALID_REQUEST", Message: message})
}

// WriteUnauthorized writes a 401 for missing or invalid session tokens
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(APIError{Code: "UNAUTHORIZED", Message: "authentication required"})
}

// Status reports the HTTP status an error maps to
func Status(err error) int {
	return resolve(err).status
}
