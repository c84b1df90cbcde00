package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/taskhive-api/internal/api"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/mocks"
	"github.com/taskhive/taskhive-api/internal/service/auth"
)

func newAuthHandler(userStore *mocks.MockUserStore) *api.AuthHandler {
	return api.NewAuthHandler(
		userStore,
		&mocks.MockJWTService{Token: "test-token"},
		auth.NewBcryptHasher(bcrypt.MinCost),
		auth.NewBcryptVerifier(),
	)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestRegisterSuccess(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	handler := newAuthHandler(userStore)

	rr := postJSON(t, handler.Register, "/api/auth/register", map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp api.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "test-token", resp.Token)
	assert.Equal(t, "Ada Lovelace", resp.User.Name)
	assert.Equal(t, "ada@example.com", resp.User.Email)

	// The stored user carries a bcrypt hash, never the plaintext
	stored, ok := userStore.Users["ada@example.com"]
	require.True(t, ok)
	assert.Empty(t, stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("password123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	handler := newAuthHandler(userStore)

	body := map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "password123",
	}
	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/api/auth/register", body).Code)

	rr := postJSON(t, handler.Register, "/api/auth/register", body)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRegisterValidation(t *testing.T) {
	handler := newAuthHandler(mocks.NewMockUserStore())

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "ada@example.com", "password": "password123"}},
		{"bad email", map[string]string{"name": "Ada", "email": "not-an-email", "password": "password123"}},
		{"short password", map[string]string{"name": "Ada", "email": "ada@example.com", "password": "short"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := postJSON(t, handler.Register, "/api/auth/register", tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	handler := newAuthHandler(userStore)

	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/api/auth/register", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "password123",
	}).Code)

	rr := postJSON(t, handler.Login, "/api/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "test-token", resp.Token)
	assert.Equal(t, "ada@example.com", resp.User.Email)
}

func TestLoginBadCredentials(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	handler := newAuthHandler(userStore)

	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/api/auth/register", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "password123",
	}).Code)

	// Wrong password
	rr := postJSON(t, handler.Login, "/api/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Unknown email gets the same answer, not a 404
	rr = postJSON(t, handler.Login, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestListUsersSanitized(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	user, err := domain.NewUser("Ada", "ada@example.com", "password123")
	require.NoError(t, err)
	user.HashedPassword = "hash"
	user.Password = ""
	userStore.Users[user.Email] = user

	handler := newAuthHandler(userStore)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
	rr := httptest.NewRecorder()
	handler.ListUsers(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var users []domain.UserSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "ada@example.com", users[0].Email)
	assert.NotContains(t, rr.Body.String(), "hash")
}
