package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/jpl-au/stash/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

type users map[string]bool

func (u users) UserExists(_ context.Context, id string) (bool, error) { return u[id], nil }

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestResolver_Owner(t *testing.T) {
	r := auth.NewResolver(secret, "jwt", users{"alice": true})
	valid := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
		"id":  "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: valid})
		owner, err := r.Owner(req)
		require.NoError(t, err)
		assert.Equal(t, "alice", owner)
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		owner, err := r.Owner(req)
		require.NoError(t, err)
		assert.Equal(t, "alice", owner)
	})

	rejects := map[string]string{
		"missing":      "",
		"garbage":      "not.a.token",
		"bad secret":   sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"id": "alice"}),
		"expired":      sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"id": "alice", "exp": time.Now().Add(-time.Hour).Unix()}),
		"no id":        sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "alice"}),
		"unknown user": sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"id": "mallory"}),
	}
	for name, tok := range rejects {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
			if tok != "" {
				req.AddCookie(&http.Cookie{Name: "jwt", Value: tok})
			}
			_, err := r.Owner(req)
			assert.ErrorIs(t, err, auth.ErrUnauthenticated)
		})
	}
}

func TestResolver_NoSecret(t *testing.T) {
	r := auth.NewResolver("", "jwt", users{"alice": true})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, jwt.SigningMethodHS256, []byte(""), jwt.MapClaims{"id": "alice"}))
	_, err := r.Owner(req)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}
