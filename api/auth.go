package api

import (
	"context"
	"net/http"
)

// User is an account as the backend reports it.
type User struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// LoginParams are the credentials for Login.
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterParams describe a new account. Role is optional; the backend
// defaults it.
type RegisterParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// AuthResult is the outcome of a successful login or registration.
type AuthResult struct {
	User  User
	Token string
}

type authResponse struct {
	envelope
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Profile asks the backend who the current session belongs to. A 401/403
// answer surfaces as ErrUnauthenticated and means nobody is signed in.
func (c *Client) Profile(ctx context.Context) (User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/user-profile", nil, &resp); err != nil {
		return User{}, err
	}
	if err := resp.check(); err != nil {
		return User{}, err
	}
	return resp.User, nil
}

// Login exchanges credentials for a session. On success the returned bearer
// token (when the backend issues one) is installed on the client.
func (c *Client) Login(ctx context.Context, params LoginParams) (AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", params, &resp); err != nil {
		return AuthResult{}, err
	}
	if err := resp.check(); err != nil {
		return AuthResult{}, err
	}
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}
	return AuthResult{User: resp.User, Token: resp.Token}, nil
}

// Register creates an account and, like Login, installs the session it opens.
func (c *Client) Register(ctx context.Context, params RegisterParams) (AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", params, &resp); err != nil {
		return AuthResult{}, err
	}
	if err := resp.check(); err != nil {
		return AuthResult{}, err
	}
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}
	return AuthResult{User: resp.User, Token: resp.Token}, nil
}

// Logout ends the backend session. The local bearer token is cleared whether
// or not the call succeeds, so a dead backend cannot pin a stale identity.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", struct{}{}, nil)
	c.SetToken("")
	return err
}
