package api

import (
	"context"
	"fmt"
)

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

// Register creates an account and returns its session token.
func (c *Client) Register(ctx context.Context, creds Credentials) (string, error) {
	return c.authenticate(ctx, "/auth/register", creds)
}

func (c *Client) authenticate(ctx context.Context, path string, creds Credentials) (string, error) {
	var resp AuthResponse
	if err := c.Post(ctx, path, creds, &resp); err != nil {
		return "", fmt.Errorf("authentication failed: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("authentication failed: %w", &MalformedResponseError{Reason: "missing token"})
	}
	return resp.Token, nil
}
