package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
	"github.com/Mynor454-s/iccsa-admin/internal/upstream"
	"github.com/Mynor454-s/iccsa-admin/pkg/utils"
)

// UserHandler proxies user administration. The router guards this surface
// with the admin role requirement.
type UserHandler struct {
	Users *upstream.UsersClient
}

func NewUserHandler(users *upstream.UsersClient) *UserHandler {
	return &UserHandler{Users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if user.Name == "" || user.Email == "" || user.Password == "" {
		utils.Error(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	created, err := h.Users.Create(r.Context(), &user)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	created.Password = ""
	utils.JSON(w, http.StatusCreated, created)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	updated, err := h.Users.Update(r.Context(), id, &user)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	updated.Password = ""
	utils.JSON(w, http.StatusOK, updated)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if err := h.Users.Delete(r.Context(), id); err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func (h *UserHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Users.ListRoles(r.Context())
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, roles)
}
