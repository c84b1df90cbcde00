package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/store"
)

// MockNotificationStore implements store.NotificationStore for testing
type MockNotificationStore struct {
	// Function fields for customizable behavior
	CreateFn          func(ctx context.Context, notification *domain.Notification) error
	ListByRecipientFn func(ctx context.Context, recipientID uuid.UUID) ([]*store.NotificationView, error)
	MarkReadFn        func(ctx context.Context, id, recipientID uuid.UUID) (*domain.Notification, error)
	MarkAllReadFn     func(ctx context.Context, recipientID uuid.UUID) (int64, error)

	// Data for default implementation
	Notifications []*domain.Notification
	CreateError   error
}

// Ensure MockNotificationStore implements store.NotificationStore
var _ store.NotificationStore = (*MockNotificationStore)(nil)

// NewMockNotificationStore creates a new mock store with initialized defaults
func NewMockNotificationStore() *MockNotificationStore {
	return &MockNotificationStore{}
}

// Create implements the NotificationStore interface
func (m *MockNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, notification)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Notifications = append(m.Notifications, notification)
	return nil
}

// ListByRecipient implements the NotificationStore interface
func (m *MockNotificationStore) ListByRecipient(
	ctx context.Context,
	recipientID uuid.UUID,
) ([]*store.NotificationView, error) {
	if m.ListByRecipientFn != nil {
		return m.ListByRecipientFn(ctx, recipientID)
	}

	// Newest first, capped, matching the SQL implementation's ORDER BY and
	// LIMIT. Notifications are appended in creation order, so walk backwards.
	views := []*store.NotificationView{}
	for i := len(m.Notifications) - 1; i >= 0; i-- {
		n := m.Notifications[i]
		if n.RecipientID != recipientID {
			continue
		}
		views = append(views, &store.NotificationView{Notification: *n})
		if len(views) == store.NotificationListLimit {
			break
		}
	}
	return views, nil
}

// MarkRead implements the NotificationStore interface
func (m *MockNotificationStore) MarkRead(
	ctx context.Context,
	id, recipientID uuid.UUID,
) (*domain.Notification, error) {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, id, recipientID)
	}

	for _, n := range m.Notifications {
		if n.ID == id && n.RecipientID == recipientID {
			n.Read = true
			return n, nil
		}
	}
	return nil, store.ErrNotificationNotFound
}

// MarkAllRead implements the NotificationStore interface
func (m *MockNotificationStore) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	if m.MarkAllReadFn != nil {
		return m.MarkAllReadFn(ctx, recipientID)
	}

	var count int64
	for _, n := range m.Notifications {
		if n.RecipientID == recipientID && !n.Read {
			n.Read = true
			count++
		}
	}
	return count, nil
}
