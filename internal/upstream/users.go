package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
)

// UsersClient wraps the /users and /roles endpoints.
type UsersClient struct {
	c *Client
}

func (u *UsersClient) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := u.c.do(ctx, "users", http.MethodGet, "/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *UsersClient) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var out models.User
	if err := u.c.do(ctx, "users", http.MethodPost, "/users", nil, user, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *UsersClient) Update(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	var out models.User
	if err := u.c.do(ctx, "users", http.MethodPut, fmt.Sprintf("/users/%d", id), nil, user, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *UsersClient) Delete(ctx context.Context, id int64) error {
	return u.c.do(ctx, "users", http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}

func (u *UsersClient) ListRoles(ctx context.Context) ([]models.Role, error) {
	var out []models.Role
	if err := u.c.do(ctx, "roles", http.MethodGet, "/roles", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
