package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Mynor454-s/iccsa-admin/internal/middleware"
	"github.com/Mynor454-s/iccsa-admin/internal/models"
	"github.com/Mynor454-s/iccsa-admin/internal/session"
	"github.com/Mynor454-s/iccsa-admin/internal/upstream"
	"github.com/Mynor454-s/iccsa-admin/pkg/utils"
)

type AuthHandler struct {
	Store *session.Store
}

func NewAuthHandler(store *session.Store) *AuthHandler {
	return &AuthHandler{Store: store}
}

// Login authenticates against the print-shop backend and opens a gateway
// session. The session id travels back both in the body and as a cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	sess, err := h.Store.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if upstream.IsUnauthorized(err) {
			utils.Error(w, http.StatusUnauthorized, serverMessageOr(err, "Invalid credentials"))
			return
		}
		utils.Error(w, http.StatusBadGateway, serverMessageOr(err, "Authentication service unavailable"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.JSON(w, http.StatusOK, map[string]any{
		"sessionId": sess.ID,
		"expiresAt": sess.ExpiresAt.Format(time.RFC3339),
		"user": map[string]string{
			"name":  sess.UserName,
			"email": sess.UserEmail,
			"role":  sess.UserRole,
		},
	})
}

// Logout invalidates the session; per-session controllers are torn down by
// the store's logout hooks.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		h.Store.Logout(r.Context(), sess.ID)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me reports the authenticated identity, used by the SPA on reload.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Session required")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{
		"user": map[string]string{
			"name":  sess.UserName,
			"email": sess.UserEmail,
			"role":  sess.UserRole,
		},
		"expiresAt": sess.ExpiresAt.Format(time.RFC3339),
	})
}

func serverMessageOr(err error, fallback string) string {
	if msg := upstream.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}
