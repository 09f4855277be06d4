package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"roomhub/internal/api/apierr"
	"roomhub/internal/services/auth"
)

func (s *Server) handleGuest(w http.ResponseWriter, r *http.Request) {
	var req GuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteBadRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		apierr.WriteBadRequest(w, "displayName is required")
		return
	}

	session, err := s.auth.CreateGuestPlayer(r.Context(), req.DisplayName)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	s.writeAuthResponse(w, session)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteBadRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		apierr.WriteBadRequest(w, "username and password are required")
		return
	}
	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}

	session, err := s.auth.RegisterPlayer(r.Context(), req.Username, req.Password, displayName)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	s.writeAuthResponse(w, session)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteBadRequest(w, "invalid JSON body")
		return
	}

	session, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	s.writeAuthResponse(w, session)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, playerResponse(session.Player))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	s.auth.InvalidateSession(session.Token)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeAuthResponse(w http.ResponseWriter, session *auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Player:    playerResponse(session.Player),
	})
}
