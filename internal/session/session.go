// Package session tracks the signed-in user on this machine. The token is a
// backend-issued JWT; the client holds no signing key, so claims are decoded
// without verification and used for display and expiry hints only.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prolearn/prolearn-go/internal/dto"
	"github.com/prolearn/prolearn-go/internal/localstore"
)

// ErrNotSignedIn is returned when an operation needs a session and none is
// stored.
var ErrNotSignedIn = errors.New("not signed in")

// Claims is the subset of token claims the client cares about.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt *time.Time
}

// Current loads the stored session, or ErrNotSignedIn.
func Current(store *localstore.Store) (*localstore.Session, error) {
	sess, err := store.LoadSession()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotSignedIn
	}
	return sess, nil
}

// Save persists the session from a login/register response.
func Save(store *localstore.Store, auth dto.AuthResponse) error {
	return store.SaveSession(localstore.Session{
		Token:     auth.Token,
		Email:     auth.Email,
		Role:      string(auth.Role),
		FirstName: auth.FirstName,
		LastName:  auth.LastName,
	})
}

// Decode extracts claims from a token without verifying its signature.
func Decode(token string) (Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, err
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("unexpected claims shape")
	}

	var c Claims
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if role, ok := mc["role"].(string); ok {
		c.Role = role
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		c.ExpiresAt = &t
	}
	return c, nil
}

// Expired reports whether the claims carry an expiry in the past. Tokens
// without an exp claim never report expired.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}
