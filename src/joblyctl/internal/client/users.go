package client

import (
	"context"
	"net/url"
	"strconv"
)

func userPath(username string) string {
	return "/users/" + url.PathEscape(username)
}

// ListUsers returns every user. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var resp struct {
		Users []User `json:"users"`
	}
	if err := c.Get(ctx, "/users", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// GetUser returns a user with the ids of the jobs they applied to
func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.Get(ctx, userPath(username), &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// CreateUser creates a user as an admin and returns it with its token
func (c *Client) CreateUser(ctx context.Context, nu NewUser) (*User, string, error) {
	var resp struct {
		User  User   `json:"user"`
		Token string `json:"token"`
	}
	if err := c.Post(ctx, "/users", nu, &resp); err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Token, nil
}

// UpdateUser applies a partial update to a user
func (c *Client) UpdateUser(ctx context.Context, username string, fields map[string]interface{}) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.Patch(ctx, userPath(username), fields, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// DeleteUser deletes a user
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	return c.Delete(ctx, userPath(username), nil)
}

// Apply records an application of username to a job
func (c *Client) Apply(ctx context.Context, username string, jobID int64) error {
	return c.Post(ctx, userPath(username)+"/jobs/"+strconv.FormatInt(jobID, 10), nil, nil)
}
