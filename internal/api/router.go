package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.recoverPanics, s.logRequests)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	// Unauthenticated identity endpoints
	api.HandleFunc("/players/guest", s.handleGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/players/login", s.handleLogin).Methods(http.MethodPost)

	// Everything below requires a session
	authed := api.NewRoute().Subrouter()
	authed.Use(s.requireAuth)

	authed.HandleFunc("/players/me", s.handleMe).Methods(http.MethodGet)
	authed.HandleFunc("/players/logout", s.handleLogout).Methods(http.MethodPost)

	authed.HandleFunc("/rooms", s.handleCreateRoom).Methods(http.MethodPost)
	authed.HandleFunc("/rooms", s.handleListRooms).Methods(http.MethodGet)
	authed.HandleFunc("/rooms/{id}", s.handleGetRoom).Methods(http.MethodGet)
	authed.HandleFunc("/rooms/{id}/join", s.handleJoinRoom).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{id}/leave", s.handleLeaveRoom).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{id}/start", s.handleStartGame).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{id}/end", s.handleEndGame).Methods(http.MethodPost)

	authed.HandleFunc("/saves", s.handleListSaves).Methods(http.MethodGet)
	authed.HandleFunc("/saves/{slot}", s.handlePutSave).Methods(http.MethodPut)
	authed.HandleFunc("/saves/{slot}", s.handleGetSave).Methods(http.MethodGet)
	authed.HandleFunc("/saves/{slot}", s.handleDeleteSave).Methods(http.MethodDelete)

	authed.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
