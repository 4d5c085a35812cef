package client

import (
	"context"
	"fmt"

	"travelcms/dto"
	"travelcms/models"
)

func (c *Client) store() (TokenStore, error) {
	store, ok := c.tokens.(TokenStore)
	if !ok {
		return nil, fmt.Errorf("token source %T is read-only", c.tokens)
	}
	return store, nil
}

// Login exchanges credentials for an access token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	store, err := c.store()
	if err != nil {
		return models.User{}, err
	}
	var out dto.LoginResponse
	if err := c.Post(ctx, "/auth/login", dto.LoginInput{Email: email, Password: password}, &out); err != nil {
		return models.User{}, err
	}
	if err := store.SetToken(out.AccessToken); err != nil {
		return models.User{}, fmt.Errorf("store token: %w", err)
	}
	c.logger.Info("logged in as %s", out.User.Email)
	return out.User, nil
}

// Logout forgets the stored token.
func (c *Client) Logout() error {
	store, err := c.store()
	if err != nil {
		return err
	}
	return store.ClearToken()
}

// Me returns the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.Get(ctx, "/auth/me", &user)
	return user, err
}
