// Package auth resolves the owner of an HTTP request from its session token.
//
// Tokens are HMAC-signed JWTs carried in the session cookie or an
// Authorization: Bearer header. The owner is the token's "id" claim, and it
// must name a registered user. Issuing tokens is someone else's job: stash
// only verifies them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt"
)

// ErrUnauthenticated is returned when no valid owner can be resolved.
var ErrUnauthenticated = errors.New("user not authenticated")

// Users reports whether an owner id is registered.
type Users interface {
	UserExists(ctx context.Context, id string) (bool, error)
}

// Resolver verifies session tokens.
type Resolver struct {
	secret []byte
	cookie string
	users  Users
}

// NewResolver returns a Resolver that verifies tokens signed with secret,
// read from the named cookie.
func NewResolver(secret, cookie string, users Users) *Resolver {
	return &Resolver{secret: []byte(secret), cookie: cookie, users: users}
}

// Owner returns the owner id of r.
func (a *Resolver) Owner(r *http.Request) (string, error) {
	raw := a.token(r)
	if raw == "" {
		return "", fmt.Errorf("%w: no session token", ErrUnauthenticated)
	}
	id, err := a.verify(raw)
	if err != nil {
		return "", err
	}
	ok, err := a.users.UserExists(r.Context(), id)
	if err != nil {
		return "", fmt.Errorf("resolve owner: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: unknown user", ErrUnauthenticated)
	}
	return id, nil
}

func (a *Resolver) token(r *http.Request) string {
	if c, err := r.Cookie(a.cookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// verify checks the signature and expiry of raw and returns its id claim.
func (a *Resolver) verify(raw string) (string, error) {
	if len(a.secret) == 0 {
		return "", fmt.Errorf("%w: no auth secret configured", ErrUnauthenticated)
	}
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}
	id, _ := claims["id"].(string)
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: token has no id", ErrUnauthenticated)
	}
	return id, nil
}
