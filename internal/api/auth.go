package api

import (
	"context"

	"ekstre/internal/domain"
)

// AuthResponse carries the token pair and user returned by the auth
// endpoints.
type AuthResponse struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    domain.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.postJSON(ctx, "/api/auth/login/", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and logs it in. The password confirmation is
// sent as-is; equality is the caller's responsibility.
func (c *Client) Register(ctx context.Context, username, email, password, password2 string) (*AuthResponse, error) {
	var resp AuthResponse
	req := registerRequest{Username: username, Email: email, Password: password, Password2: password2}
	if err := c.postJSON(ctx, "/api/auth/register/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
