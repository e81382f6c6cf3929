package web

import (
	"context"
	"net/http"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// Cookie names. The session cookie carries the JWT; the chat cookie binds a
// browser to its in-memory chat session.
const (
	sessionCookieName = "session_token"
	chatCookieName    = "chat_session"
	flashCookieName   = "flash"
)

// currentUserID returns the authenticated account ID, or "" for guests.
func currentUserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// withUser resolves the session cookie to an account ID when present.
// Invalid or expired tokens make the request anonymous rather than failing:
// the route-level guards decide whether that matters.
func (s *Server) withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
			if userID, err := s.users.Authenticate(c.Value); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requirePageAuth redirects anonymous browser requests to the login page.
func (s *Server) requirePageAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUserID(r.Context()) == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireJSONAuth answers anonymous API requests with a 401 envelope.
func (s *Server) requireJSONAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUserID(r.Context()) == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "Authentication required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
