package upstream

import (
	"context"
	"net/http"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
)

// AuthClient wraps the /auth endpoints.
type AuthClient struct {
	c *Client
}

// Login exchanges credentials for a bearer token. The call is unauthenticated
// and ignores any token on the context.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	req := models.LoginRequest{Email: email, Password: password}
	var resp models.LoginResponse
	if err := a.c.do(ctx, "auth", http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
