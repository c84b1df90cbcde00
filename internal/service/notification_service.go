package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/store"
)

// NotificationService provides read and acknowledgement operations over a
// user's notifications. Creation has no entry point here: notifications come
// into existence only as a side effect of task assignment.
type NotificationService interface {
	// ListForUser returns the recipient's newest notifications, sender
	// hydrated, capped at the store's list limit.
	ListForUser(ctx context.Context, recipientID uuid.UUID) ([]*store.NotificationView, error)

	// MarkRead acknowledges a single notification owned by recipientID and
	// returns the updated entity. A notification that does not exist or
	// belongs to someone else surfaces as store.ErrNotificationNotFound.
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) (*domain.Notification, error)

	// MarkAllRead acknowledges every unread notification owned by
	// recipientID and returns how many were affected.
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

// notificationServiceImpl implements the NotificationService interface.
type notificationServiceImpl struct {
	notificationStore store.NotificationStore
	logger            *slog.Logger
}

// NewNotificationService creates a new NotificationService.
// It returns an error if any of the required dependencies are nil.
func NewNotificationService(
	notificationStore store.NotificationStore,
	logger *slog.Logger,
) (NotificationService, error) {
	if notificationStore == nil {
		return nil, domain.NewValidationError("notificationStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &notificationServiceImpl{
		notificationStore: notificationStore,
		logger:            logger.With(slog.String("component", "notification_service")),
	}, nil
}

// ListForUser implements NotificationService.ListForUser
func (s *notificationServiceImpl) ListForUser(
	ctx context.Context,
	recipientID uuid.UUID,
) ([]*store.NotificationView, error) {
	views, err := s.notificationStore.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, NewNotificationServiceError("list", "failed to list notifications", err)
	}
	return views, nil
}

// MarkRead implements NotificationService.MarkRead
func (s *notificationServiceImpl) MarkRead(
	ctx context.Context,
	id, recipientID uuid.UUID,
) (*domain.Notification, error) {
	notification, err := s.notificationStore.MarkRead(ctx, id, recipientID)
	if err != nil {
		return nil, NewNotificationServiceError("mark_read", "failed to mark notification read", err)
	}
	return notification, nil
}

// MarkAllRead implements NotificationService.MarkAllRead
func (s *notificationServiceImpl) MarkAllRead(
	ctx context.Context,
	recipientID uuid.UUID,
) (int64, error) {
	count, err := s.notificationStore.MarkAllRead(ctx, recipientID)
	if err != nil {
		return 0, NewNotificationServiceError("mark_all_read", "failed to mark notifications read", err)
	}
	return count, nil
}
