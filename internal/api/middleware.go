package api

import (
	"bufio"
	"context"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"roomhub/internal/api/apierr"
	"roomhub/internal/services/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionCookieName is the cookie the browser flow stores the token in;
// programmatic clients use the Authorization header instead
const SessionCookieName = "roomhub_session"

// sessionFromContext returns the authenticated session set by requireAuth
func sessionFromContext(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// requireAuth rejects requests without a valid session token and stashes
// the session in the request context
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			apierr.WriteUnauthorized(w)
			return
		}

		session, err := s.auth.ValidateSession(token)
		if err != nil {
			apierr.WriteUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return token
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack passes through so the WebSocket upgrade works behind the logger
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return hj.Hijack()
}

// logRequests logs one line per request with method, path, status, and
// duration
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)))
	})
}

// recoverPanics turns handler panics into 500s instead of dropped
// connections
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panic",
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())))
				writeJSON(w, http.StatusInternalServerError,
					apierr.APIError{Code: "INTERNAL_ERROR", Message: "internal error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
