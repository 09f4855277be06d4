package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"roomhub/internal/api/apierr"
	"roomhub/internal/model"
	"roomhub/internal/registry"
)

func roomID(r *http.Request) model.RoomID {
	return model.RoomID(mux.Vars(r)["id"])
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteBadRequest(w, "invalid JSON body")
		return
	}

	session := sessionFromContext(r.Context())
	room, err := s.registry.CreateRoom(session.Player, registry.RoomSettings{
		Name:       req.Name,
		MaxPlayers: req.MaxPlayers,
		Public:     req.IsPublic,
		Password:   req.Password,
	}, req.Profile)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room.Snapshot())
}

func (s *Server) handleListRooms(w http.ResponseWriter, _ *http.Request) {
	rooms := s.registry.ListPublicWaiting()
	snapshots := make([]model.RoomSnapshot, 0, len(rooms))
	for _, room := range rooms {
		snapshots = append(snapshots, room.Snapshot())
	}
	writeJSON(w, http.StatusOK, RoomListResponse{Rooms: snapshots})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := s.registry.GetRoom(roomID(r))
	if err != nil {
		apierr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Snapshot())
}

func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	var req JoinRoomRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierr.WriteBadRequest(w, "invalid JSON body")
			return
		}
	}

	session := sessionFromContext(r.Context())
	room, err := s.registry.Join(roomID(r), session.Player, req.Profile, req.Password)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Snapshot())
}

func (s *Server) handleLeaveRoom(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	room, err := s.registry.Leave(roomID(r), session.PlayerID)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	if room == nil {
		// The departing player was the last member and the room closed
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, room.Snapshot())
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	room, err := s.registry.StartGame(roomID(r), session.PlayerID)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Snapshot())
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	room, err := s.registry.EndGame(roomID(r), session.PlayerID)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Snapshot())
}
