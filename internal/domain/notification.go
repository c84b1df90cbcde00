package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common notification validation errors
var (
	ErrEmptyNotificationID = errors.New("notification ID cannot be empty")
	ErrEmptyRecipientID    = errors.New("notification recipient ID cannot be empty")
	ErrEmptyMessage        = errors.New("notification message cannot be empty")
)

// NotificationType distinguishes assignment notifications from system ones.
type NotificationType string

// Valid notification types.
const (
	NotificationAssignment NotificationType = "Assignment"
	NotificationSystem     NotificationType = "System"
)

// IsValid reports whether the type is one of the known notification types.
func (t NotificationType) IsValid() bool {
	return t == NotificationAssignment || t == NotificationSystem
}

// Notification is a message owned by its recipient. Notifications are
// created only as a side effect of task assignment, never directly by a
// client. Read transitions false→true only and never reverts.
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	RecipientID uuid.UUID        `json:"recipient_id"`
	SenderID    *uuid.UUID       `json:"sender_id,omitempty"`
	Message     string           `json:"message"`
	Read        bool             `json:"read"`
	Type        NotificationType `json:"type"`
	Link        string           `json:"link,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewNotification creates a new unread Notification for recipientID.
// Type defaults to System when empty. Returns an error if validation fails.
func NewNotification(
	recipientID uuid.UUID,
	senderID *uuid.UUID,
	message string,
	notifType NotificationType,
	link string,
) (*Notification, error) {
	if notifType == "" {
		notifType = NotificationSystem
	}

	n := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		SenderID:    senderID,
		Message:     message,
		Read:        false,
		Type:        notifType,
		Link:        link,
		CreatedAt:   time.Now().UTC(),
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate checks if the Notification has valid data.
// Returns an error if any field fails validation.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrEmptyNotificationID
	}

	if n.RecipientID == uuid.Nil {
		return ErrEmptyRecipientID
	}

	if n.Message == "" {
		return ErrEmptyMessage
	}

	if !n.Type.IsValid() {
		return ErrInvalidNotificationType
	}

	return nil
}
