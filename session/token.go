package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken signals that no cached token exists.
var ErrNoToken = errors.New("session: no cached token")

// TokenClaims are the identity fields carried in the backend's bearer token.
// The client parses them without verifying the signature: verification is the
// server's job, and the claims are only used to seed a provisional principal
// until Initialize confirms it.
type TokenClaims struct {
	Subject   string
	Name      string
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// Expired reports whether the token's lifetime has passed at now. Tokens
// without an exp claim are treated as expired.
func (c TokenClaims) Expired(now time.Time) bool {
	return c.ExpiresAt.IsZero() || !now.Before(c.ExpiresAt)
}

// Principal converts the claims into a principal suitable for Store.Seed.
func (c TokenClaims) Principal() Principal {
	return Principal{ID: c.Subject, Name: c.Name, Email: c.Email, Role: c.Role}
}

// ParseToken extracts identity claims from a JWT without verification.
func ParseToken(token string) (TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, fmt.Errorf("session: parse token: %w", err)
	}

	out := TokenClaims{
		Subject: claimString(claims, "user_id"),
		Name:    claimString(claims, "name"),
		Email:   claimString(claims, "email"),
		Role:    Role(claimString(claims, "role")),
	}
	if out.Subject == "" {
		out.Subject = claimString(claims, "sub")
	}
	if out.Subject == "" {
		return TokenClaims{}, fmt.Errorf("session: token carries no subject")
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// TokenCache persists the bearer token between runs, the headless stand-in
// for the cookie the browser kept. The file is created user-only.
type TokenCache struct {
	Path string
}

// DefaultTokenCachePath returns ~/.config/eventx/session.json.
func DefaultTokenCachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("session: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "eventx", "session.json"), nil
}

type cachedToken struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// Save writes the token to the cache file, creating the directory if needed.
func (c TokenCache) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o700); err != nil {
		return fmt.Errorf("session: create token directory: %w", err)
	}
	b, err := json.MarshalIndent(cachedToken{Token: token, SavedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode token cache: %w", err)
	}
	if err := os.WriteFile(c.Path, b, 0o600); err != nil {
		return fmt.Errorf("session: write token cache: %w", err)
	}
	return nil
}

// Load returns the cached token, or ErrNoToken when none is stored.
func (c TokenCache) Load() (string, error) {
	b, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("session: read token cache: %w", err)
	}
	var cached cachedToken
	if err := json.Unmarshal(b, &cached); err != nil {
		return "", fmt.Errorf("session: decode token cache: %w", err)
	}
	if cached.Token == "" {
		return "", ErrNoToken
	}
	return cached.Token, nil
}

// Delete removes the cache file. Deleting an absent cache is a no-op.
func (c TokenCache) Delete() error {
	if err := os.Remove(c.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: remove token cache: %w", err)
	}
	return nil
}
