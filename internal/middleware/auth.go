package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Mynor454-s/iccsa-admin/internal/session"
	"github.com/Mynor454-s/iccsa-admin/internal/upstream"
)

type contextKey string

const SessionKey contextKey = "session"

// SessionCookie is the fallback transport for the session id; the SPA sends
// the X-Session-Token header, curl and browser navigation use the cookie.
const (
	SessionHeader = "X-Session-Token"
	SessionCookie = "iccsa_session"
)

// AuthMiddleware resolves the caller's gateway session and plants both the
// session and its upstream bearer credential on the request context. Requests
// without a live session get 401; the SPA reacts by returning to the login
// screen.
type AuthMiddleware struct {
	store *session.Store
}

func NewAuthMiddleware(store *session.Store) *AuthMiddleware {
	return &AuthMiddleware{store: store}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := sessionID(r)
		if id == "" {
			http.Error(w, "Session required", http.StatusUnauthorized)
			return
		}

		sess, ok := m.store.Get(r.Context(), id)
		if !ok {
			http.Error(w, "Session expired, please log in again", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, sess)
		ctx = upstream.WithToken(ctx, sess.Token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole ensures the session's user holds one of the allowed roles.
// Applied on top of Authenticate.
func (m *AuthMiddleware) RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				http.Error(w, "Session required", http.StatusUnauthorized)
				return
			}

			for _, role := range allowedRoles {
				if strings.EqualFold(sess.UserRole, role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
		})
	}
}

// RequireAdmin gates the user-administration surface.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole("ADMIN")(next)
}

// SessionFromContext extracts the gateway session from the request context.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(*session.Session)
	return sess, ok
}

func sessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
