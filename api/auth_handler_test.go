package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginIssuesToken(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin@example.com", "correct horse", true)

	rec := env.request(t, http.MethodPost, "/login", "", LoginRequest{
		Email:    "admin@example.com",
		Password: "correct horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[LoginResponse](t, rec)
	require.NotEmpty(t, resp.Token)
	assert.True(t, resp.IsAdmin)

	// The issued token must authenticate follow-up requests.
	dash := env.request(t, http.MethodGet, "/dashboard", resp.Token, nil)
	assert.Equal(t, http.StatusOK, dash.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin@example.com", "correct horse", true)

	wrongPassword := env.request(t, http.MethodPost, "/login", "", LoginRequest{
		Email:    "admin@example.com",
		Password: "battery staple",
	})
	unknownEmail := env.request(t, http.MethodPost, "/login", "", LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse",
	})

	// Unknown email and wrong password must be indistinguishable.
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLoginRequiresCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/login", "", LoginRequest{Email: "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthGating(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@example.com", "pw", true)
	reader := env.createUser(t, "reader@example.com", "pw", false)

	// Anonymous requests to protected surfaces get 401.
	assert.Equal(t, http.StatusUnauthorized,
		env.request(t, http.MethodGet, "/dashboard", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized,
		env.request(t, http.MethodGet, "/posts", "", nil).Code)

	// Authenticated non-admins reach the dashboard but not management.
	readerToken := env.tokenFor(t, reader)
	assert.Equal(t, http.StatusOK,
		env.request(t, http.MethodGet, "/dashboard", readerToken, nil).Code)
	assert.Equal(t, http.StatusForbidden,
		env.request(t, http.MethodGet, "/posts", readerToken, nil).Code)

	adminToken := env.tokenFor(t, admin)
	assert.Equal(t, http.StatusOK,
		env.request(t, http.MethodGet, "/posts", adminToken, nil).Code)
}

func TestMalformedTokenRejected(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/blog", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
