package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/domain"
)

// NotificationListLimit caps how many notifications a single list call
// returns, newest first. Older entries are simply not surfaced.
const NotificationListLimit = 50

// NotificationView is the hydrated read projection of a notification:
// the stored entity plus the sender expanded to a sanitized summary.
type NotificationView struct {
	domain.Notification
	Sender *domain.UserSummary `json:"sender,omitempty"`
}

// NotificationStore defines the interface for notification data persistence.
type NotificationStore interface {
	// Create saves a new notification to the store. The recipient is not
	// checked for existence; notification creation is fire-and-forget.
	// Returns validation errors from the domain Notification if data is invalid.
	Create(ctx context.Context, notification *domain.Notification) error

	// ListByRecipient returns up to NotificationListLimit notifications for
	// the recipient, newest first, with the sender hydrated.
	// Returns an empty slice when the recipient has none.
	ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*NotificationView, error)

	// MarkRead sets read=true on a single notification owned by recipientID
	// and returns the updated entity. Read never transitions back to false.
	// Returns ErrNotificationNotFound if the notification does not exist or
	// belongs to another recipient.
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) (*domain.Notification, error)

	// MarkAllRead sets read=true on every unread notification owned by the
	// recipient and returns the number of rows affected.
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
}
