package client

import "context"

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req := map[string]string{"username": username, "password": password}

	var resp tokenResponse
	if err := c.Post(ctx, "/auth/token", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates a regular account and returns its token
func (c *Client) Register(ctx context.Context, nu NewUser) (string, error) {
	req := map[string]string{
		"username":  nu.Username,
		"password":  nu.Password,
		"firstName": nu.FirstName,
		"lastName":  nu.LastName,
		"email":     nu.Email,
	}

	var resp tokenResponse
	if err := c.Post(ctx, "/auth/register", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Health returns the server health report
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var resp Health
	if err := c.Get(ctx, "/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Version returns the server build information
func (c *Client) Version(ctx context.Context) (*ServerVersion, error) {
	var resp ServerVersion
	if err := c.Get(ctx, "/version", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
