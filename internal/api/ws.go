package api

import (
	"net/http"
)

// handleWS hands the authenticated request to the session gateway. Browsers
// cannot set headers on WebSocket dials, so the session cookie path matters
// here.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	s.gateway.ServeWS(w, r, session.Player)
}
