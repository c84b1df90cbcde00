package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/platform/logger"
	"github.com/taskhive/taskhive-api/internal/store"
)

// PostgresNotificationStore implements the store.NotificationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresNotificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNotificationStore creates a new PostgreSQL implementation of
// the NotificationStore interface. It accepts a database connection that
// should be initialized and managed by the caller.
func NewPostgresNotificationStore(db store.DBTX, logger *slog.Logger) *PostgresNotificationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNotificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

// Ensure PostgresNotificationStore implements store.NotificationStore interface
var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

// Create implements store.NotificationStore.Create
// The recipient is not checked for existence; notifications are
// fire-and-forget.
func (s *PostgresNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := notification.Validate(); err != nil {
		log.Warn("notification validation failed during create",
			slog.String("error", err.Error()),
			slog.String("notification_id", notification.ID.String()))
		return err
	}

	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, message, read, type, link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		notification.ID,
		notification.RecipientID,
		notification.SenderID,
		notification.Message,
		notification.Read,
		notification.Type,
		notification.Link,
		notification.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create notification",
			slog.String("error", err.Error()),
			slog.String("notification_id", notification.ID.String()),
			slog.String("recipient_id", notification.RecipientID.String()))
		return err
	}

	log.Info("notification created successfully",
		slog.String("notification_id", notification.ID.String()),
		slog.String("recipient_id", notification.RecipientID.String()),
		slog.String("type", string(notification.Type)))
	return nil
}

// ListByRecipient implements store.NotificationStore.ListByRecipient
// Returns up to store.NotificationListLimit notifications newest first,
// with the sender hydrated.
func (s *PostgresNotificationStore) ListByRecipient(
	ctx context.Context,
	recipientID uuid.UUID,
) ([]*store.NotificationView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT n.id, n.recipient_id, n.message, n.read, n.type, n.link, n.created_at,
			u.id, u.name, u.email
		FROM notifications n
		LEFT JOIN users u ON u.id = n.sender_id
		WHERE n.recipient_id = $1
		ORDER BY n.created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, recipientID, store.NotificationListLimit)
	if err != nil {
		log.Error("failed to list notifications",
			slog.String("error", err.Error()),
			slog.String("recipient_id", recipientID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	notifications := []*store.NotificationView{}
	for rows.Next() {
		var (
			view        store.NotificationView
			notifType   string
			link        sql.NullString
			senderID    sql.NullString
			senderName  sql.NullString
			senderEmail sql.NullString
		)

		err := rows.Scan(
			&view.ID,
			&view.RecipientID,
			&view.Message,
			&view.Read,
			&notifType,
			&link,
			&view.CreatedAt,
			&senderID,
			&senderName,
			&senderEmail,
		)
		if err != nil {
			log.Error("failed to scan notification row", slog.String("error", err.Error()))
			return nil, err
		}

		view.Type = domain.NotificationType(notifType)
		view.Link = link.String
		if senderID.Valid {
			id, err := uuid.Parse(senderID.String)
			if err != nil {
				return nil, fmt.Errorf("invalid sender ID in notification row: %w", err)
			}
			view.SenderID = &id
			view.Sender = &domain.UserSummary{
				ID:    id,
				Name:  senderName.String,
				Email: senderEmail.String,
			}
		}

		notifications = append(notifications, &view)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return notifications, nil
}

// MarkRead implements store.NotificationStore.MarkRead
// Scoping the update to the recipient makes not-found and not-owned
// indistinguishable to the caller, which is deliberate.
func (s *PostgresNotificationStore) MarkRead(
	ctx context.Context,
	id, recipientID uuid.UUID,
) (*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1 AND recipient_id = $2
		RETURNING id, recipient_id, sender_id, message, read, type, link, created_at
	`

	var (
		notification domain.Notification
		notifType    string
		link         sql.NullString
		senderID     sql.NullString
	)

	err := s.db.QueryRowContext(ctx, query, id, recipientID).Scan(
		&notification.ID,
		&notification.RecipientID,
		&senderID,
		&notification.Message,
		&notification.Read,
		&notifType,
		&link,
		&notification.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("notification not found for mark read",
				slog.String("notification_id", id.String()))
			return nil, store.ErrNotificationNotFound
		}
		log.Error("failed to mark notification read",
			slog.String("error", err.Error()),
			slog.String("notification_id", id.String()))
		return nil, err
	}

	notification.Type = domain.NotificationType(notifType)
	notification.Link = link.String
	if senderID.Valid {
		sid, err := uuid.Parse(senderID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid sender ID in notification row: %w", err)
		}
		notification.SenderID = &sid
	}

	log.Info("notification marked read", slog.String("notification_id", id.String()))
	return &notification, nil
}

// MarkAllRead implements store.NotificationStore.MarkAllRead
// Returns the number of notifications transitioned to read.
func (s *PostgresNotificationStore) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE recipient_id = $1 AND read = FALSE
	`

	result, err := s.db.ExecContext(ctx, query, recipientID)
	if err != nil {
		log.Error("failed to mark all notifications read",
			slog.String("error", err.Error()),
			slog.String("recipient_id", recipientID.String()))
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("recipient_id", recipientID.String()))
		return 0, err
	}

	log.Info("notifications marked read",
		slog.String("recipient_id", recipientID.String()),
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}
