package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alhassanmohamed2/companySYS/internal/policy"
)

// UserInput carries the writable user fields for the user-management
// endpoints.
type UserInput struct {
	Username string      `json:"username,omitempty"`
	Email    string      `json:"email,omitempty"`
	Password string      `json:"password,omitempty"`
	Role     policy.Role `json:"role,omitempty"`
}

// ListUsers returns all accounts. Admin only; the backend enforces it too.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	data, err := c.doRaw(ctx, http.MethodGet, "/users/", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[User](data)
}

// CreateUser creates an account.
func (c *Client) CreateUser(ctx context.Context, input UserInput) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/users/", nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser patches an account.
func (c *Client) UpdateUser(ctx context.Context, id int, input UserInput) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d/", id), nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d/", id), nil, nil, nil)
}

// Me returns the authenticated user's own profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/me/", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe patches the authenticated user's own profile.
func (c *Client) UpdateMe(ctx context.Context, input UserInput) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, "/users/me/", nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	return c.do(ctx, http.MethodPost, "/users/change-password/", nil, body, nil)
}
