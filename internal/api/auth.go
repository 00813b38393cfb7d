package api

import (
	"context"
	"net/http"

	"centavo/internal/auth"
)

func (c *Client) Register(ctx context.Context, params auth.RegisterParams) (*auth.Session, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/register/", nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[auth.Session](data)
}

func (c *Client) Login(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/login/", nil, creds)
	if err != nil {
		return nil, err
	}

	return decodeOne[auth.Session](data)
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout/", nil, nil)

	return err
}

func (c *Client) Profile(ctx context.Context) (*auth.User, error) {
	data, err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeOne[auth.User](data)
}

func (c *Client) UpdateProfile(ctx context.Context, params auth.ProfileParams) (*auth.User, error) {
	data, err := c.do(ctx, http.MethodPut, "/auth/profile/", nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[auth.User](data)
}
