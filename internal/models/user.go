package models

type Role struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type User struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	RoleID    int64  `json:"roleId,omitempty"`
	Role      string `json:"role,omitempty"`
	Password  string `json:"password,omitempty"` // only set on create/update requests
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// LoginRequest is the body of POST /auth/login against the remote backend.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the authenticated identity.
type LoginResponse struct {
	Token string `json:"token"`
	User  struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}
