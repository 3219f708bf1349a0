package api

import (
	"context"
	"net/http"

	"github.com/slackconnect/cli/internal/models"
)

// GetAuthURL fetches the Slack OAuth URL the user must visit to connect
// their workspace. Unauthenticated.
func (c *Client) GetAuthURL(ctx context.Context) (*models.AuthURL, error) {
	var out models.AuthURL
	if err := c.send(ctx, http.MethodGet, "/auth/slack", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCurrentUser returns the user record for the current bearer token.
func (c *Client) GetCurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.send(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshTokenStatus asks the backend whether its Slack credential for this
// user is still valid. This is about the workspace-side token, not the
// bearer token carried on the request.
func (c *Client) RefreshTokenStatus(ctx context.Context) (*models.TokenStatus, error) {
	var out models.TokenStatus
	if err := c.send(ctx, http.MethodPost, "/auth/refresh", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the bearer token on the backend.
func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Health probes the backend's health endpoint. Unauthenticated.
func (c *Client) Health(ctx context.Context) error {
	return c.send(ctx, http.MethodGet, "/health", nil, nil)
}
