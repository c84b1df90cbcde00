package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/api/middleware"
	"github.com/taskhive/taskhive-api/internal/api/shared"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/mocks"
	"github.com/taskhive/taskhive-api/internal/service/auth"
)

func seedUser(t *testing.T, userStore *mocks.MockUserStore) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Ada", "ada@example.com", "password123")
	require.NoError(t, err)
	user.HashedPassword = "hash"
	user.Password = ""
	userStore.Users[user.Email] = user
	return user
}

func protectedProbe(captured *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := middleware.GetUserID(r); ok {
			*captured = userID
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateSuccess(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	user := seedUser(t, userStore)

	jwtService := &mocks.MockJWTService{Claims: &auth.Claims{UserID: user.ID}}
	m := middleware.NewAuthMiddleware(jwtService, userStore)

	var captured uuid.UUID
	handler := m.Authenticate(protectedProbe(&captured))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, user.ID, captured)
}

func TestAuthenticateAttachesSanitizedIdentity(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	user := seedUser(t, userStore)

	jwtService := &mocks.MockJWTService{Claims: &auth.Claims{UserID: user.ID}}
	m := middleware.NewAuthMiddleware(jwtService, userStore)

	var summary domain.UserSummary
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		summary, _ = r.Context().Value(shared.UserSummaryContextKey).(domain.UserSummary)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, user.Summary(), summary)
}

func TestAuthenticateRejections(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	user := seedUser(t, userStore)

	tests := []struct {
		name       string
		header     string
		jwtService *mocks.MockJWTService
	}{
		{
			name:       "missing header",
			header:     "",
			jwtService: &mocks.MockJWTService{Claims: &auth.Claims{UserID: user.ID}},
		},
		{
			name:       "malformed header",
			header:     "Token abc",
			jwtService: &mocks.MockJWTService{Claims: &auth.Claims{UserID: user.ID}},
		},
		{
			name:       "expired token",
			header:     "Bearer expired",
			jwtService: &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken},
		},
		{
			name:       "invalid token",
			header:     "Bearer garbage",
			jwtService: &mocks.MockJWTService{ValidateErr: auth.ErrInvalidToken},
		},
		{
			name:       "deleted subject",
			header:     "Bearer valid-token",
			jwtService: &mocks.MockJWTService{Claims: &auth.Claims{UserID: uuid.New()}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := middleware.NewAuthMiddleware(tc.jwtService, userStore)
			handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler must not run for rejected requests")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}
