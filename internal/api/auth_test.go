package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/types"
)

func TestRegisterLoginMe(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(env.Router, "POST", "/api/v1/auth/register", "", types.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	// The password hash never leaves the server.
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Alice", user["name"])
	_, leaked := user["password_hash"]
	assert.False(t, leaked)

	w = performRequest(env.Router, "POST", "/api/v1/auth/login", "", types.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeBody(t, w)["token"].(string)

	w = performRequest(env.Router, "GET", "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", me["email"])
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestEnv(t)

	// Missing email.
	w := performRequest(env.Router, "POST", "/api/v1/auth/register", "", map[string]string{
		"name":     "Bob",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Short password.
	w = performRequest(env.Router, "POST", "/api/v1/auth/register", "", map[string]string{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Duplicate email.
	reg := types.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "password123"}
	require.Equal(t, http.StatusCreated,
		performRequest(env.Router, "POST", "/api/v1/auth/register", "", reg).Code)
	w = performRequest(env.Router, "POST", "/api/v1/auth/register", "", reg)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	env := setupTestEnv(t)

	require.Equal(t, http.StatusCreated,
		performRequest(env.Router, "POST", "/api/v1/auth/register", "", types.RegisterRequest{
			Name: "Carol", Email: "carol@example.com", Password: "password123",
		}).Code)

	w := performRequest(env.Router, "POST", "/api/v1/auth/login", "", types.LoginRequest{
		Email:    "carol@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])
}

func TestMeRejectsBadTokens(t *testing.T) {
	env := setupTestEnv(t)

	assert.Equal(t, http.StatusUnauthorized,
		performRequest(env.Router, "GET", "/api/v1/auth/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized,
		performRequest(env.Router, "GET", "/api/v1/auth/me", "garbage-token", nil).Code)
}

func TestHealthCheck(t *testing.T) {
	env := setupTestEnv(t)

	for _, path := range []string{"/health", "/api/health"} {
		w := performRequest(env.Router, "GET", path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", decodeBody(t, w)["status"])
	}
}
