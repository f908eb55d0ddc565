package session

import (
	"context"
	"errors"
)

// Role identifies what a signed-in user is allowed to do across the
// application. The backend owns role assignment; the client only reads it.
type Role string

const (
	RoleGuest     Role = "guest"
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// ParseRole reports whether raw names one of the known roles. Unknown values
// are returned as-is so callers can decide between denying and falling back.
func ParseRole(raw string) (Role, bool) {
	role := Role(raw)
	switch role {
	case RoleGuest, RoleUser, RoleOrganizer, RoleAdmin:
		return role, true
	default:
		return role, false
	}
}

// Principal is the authenticated identity the rest of the client reads. The
// zero value means "no confirmed identity", which is distinct from an
// authenticated guest; use Present to tell the two apart.
type Principal struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// Present reports whether a confirmed identity is held.
func (p Principal) Present() bool { return p.ID != "" }

// Availability records whether the most recent exchange with the backend
// actually answered. Unreachable still gates as logged-out (fail closed) but
// lets a front end show a "service unavailable" hint instead of a login form.
type Availability string

const (
	AvailabilityConfirmed   Availability = "confirmed"
	AvailabilityUnreachable Availability = "unreachable"
)

// Snapshot is the store's state, always read and replaced as one value.
type Snapshot struct {
	Principal    Principal
	Availability Availability
}

// Credentials are what the login endpoint accepts.
type Credentials struct {
	Email    string
	Password string
}

// Identity is the backend's answer to "who am I".
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// LoginResult bundles the identity and bearer token returned after a
// successful login.
type LoginResult struct {
	Identity Identity
	Token    string
}

// ErrUnauthenticated is the normal "nobody is logged in" answer from the
// backend. It is a valid terminal state, not a fault.
var ErrUnauthenticated = errors.New("session: not authenticated")

// Gateway is the narrow slice of the backend the store depends on.
//
// CurrentUser returns ErrUnauthenticated (possibly wrapped) when the backend
// answered and nobody is logged in; any other error means the question could
// not be answered at all.
type Gateway interface {
	CurrentUser(ctx context.Context) (Identity, error)
	Login(ctx context.Context, creds Credentials) (LoginResult, error)
	Logout(ctx context.Context) error
}

func principalOf(id Identity) Principal {
	return Principal{ID: id.ID, Name: id.Name, Email: id.Email, Role: id.Role}
}
