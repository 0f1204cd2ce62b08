package api

import (
	"context"

	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

// Login authenticates a customer and returns the profile the backend holds.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var user domain.User
	err := c.post(ctx, "/api/users/users/login", domain.LoginRequest{
		Email:    email,
		Password: password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new customer account. The caller strips CPF and CEP down
// to bare digits before building the request.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) error {
	return c.post(ctx, "/api/users/users/register", req, nil)
}
