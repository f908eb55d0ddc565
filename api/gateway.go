package api

import (
	"context"
	"errors"

	"eventx/session"
)

// SessionGateway adapts Client to the session store's gateway interface,
// translating the client's error taxonomy into the store's contract: a
// 401/403 becomes session.ErrUnauthenticated, anything else passes through
// and the store treats it as unreachable.
type SessionGateway struct {
	client *Client
}

// NewSessionGateway wraps client for use by session.NewStore.
func NewSessionGateway(client *Client) *SessionGateway {
	return &SessionGateway{client: client}
}

func (g *SessionGateway) CurrentUser(ctx context.Context) (session.Identity, error) {
	user, err := g.client.Profile(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return session.Identity{}, session.ErrUnauthenticated
		}
		return session.Identity{}, err
	}
	return identityOf(user), nil
}

func (g *SessionGateway) Login(ctx context.Context, creds session.Credentials) (session.LoginResult, error) {
	res, err := g.client.Login(ctx, LoginParams{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return session.LoginResult{}, err
	}
	return session.LoginResult{Identity: identityOf(res.User), Token: res.Token}, nil
}

func (g *SessionGateway) Logout(ctx context.Context) error {
	return g.client.Logout(ctx)
}

// identityOf keeps the backend's role string as-is. An unrecognized role
// still reaches the gate, which denies it on protected routes; coercing it
// here would hide the mismatch.
func identityOf(u User) session.Identity {
	return session.Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: session.Role(u.Role)}
}
