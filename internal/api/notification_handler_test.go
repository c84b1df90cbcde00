package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/api"
	"github.com/taskhive/taskhive-api/internal/api/shared"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/mocks"
	"github.com/taskhive/taskhive-api/internal/service"
	"github.com/taskhive/taskhive-api/internal/store"
)

type notificationHandlerFixture struct {
	notificationStore *mocks.MockNotificationStore
	router            http.Handler
	userID            uuid.UUID
}

func newNotificationHandlerFixture(t *testing.T) *notificationHandlerFixture {
	t.Helper()

	f := &notificationHandlerFixture{
		notificationStore: mocks.NewMockNotificationStore(),
		userID:            uuid.New(),
	}

	svc, err := service.NewNotificationService(f.notificationStore, nil)
	require.NoError(t, err)

	handler := api.NewNotificationHandler(svc)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), shared.UserIDContextKey, f.userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/api/notifications", handler.ListNotifications)
	r.Put("/api/notifications/read-all", handler.MarkAllNotificationsRead)
	r.Put("/api/notifications/{id}/read", handler.MarkNotificationRead)

	f.router = r
	return f
}

func (f *notificationHandlerFixture) seed(t *testing.T, recipientID uuid.UUID) *domain.Notification {
	t.Helper()
	n, err := domain.NewNotification(recipientID, nil, "You have been assigned a new task: Demo", domain.NotificationAssignment, "/tasks/demo")
	require.NoError(t, err)
	require.NoError(t, f.notificationStore.Create(context.Background(), n))
	return n
}

func (f *notificationHandlerFixture) do(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestListNotificationsOwnOnly(t *testing.T) {
	f := newNotificationHandlerFixture(t)
	f.seed(t, f.userID)
	f.seed(t, uuid.New())

	rr := f.do(t, http.MethodGet, "/api/notifications")
	require.Equal(t, http.StatusOK, rr.Code)

	var views []*store.NotificationView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, f.userID, views[0].RecipientID)
}

func TestMarkNotificationRead(t *testing.T) {
	f := newNotificationHandlerFixture(t)
	n := f.seed(t, f.userID)

	rr := f.do(t, http.MethodPut, "/api/notifications/"+n.ID.String()+"/read")
	require.Equal(t, http.StatusOK, rr.Code)

	var updated domain.Notification
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.True(t, updated.Read)
}

func TestMarkNotificationReadNotOwned(t *testing.T) {
	f := newNotificationHandlerFixture(t)
	n := f.seed(t, uuid.New())

	// Someone else's notification is indistinguishable from a missing one
	rr := f.do(t, http.MethodPut, "/api/notifications/"+n.ID.String()+"/read")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	f := newNotificationHandlerFixture(t)
	f.seed(t, f.userID)
	f.seed(t, f.userID)
	f.seed(t, uuid.New())

	rr := f.do(t, http.MethodPut, "/api/notifications/read-all")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.MarkAllReadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Updated)
}
