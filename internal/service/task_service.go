package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/platform/logger"
	"github.com/taskhive/taskhive-api/internal/realtime"
	"github.com/taskhive/taskhive-api/internal/store"
)

// TaskService provides task operations and the realtime fan-out that goes
// with them. Every event is published only after the store write it reports
// on has been acknowledged, so connected clients never see state the
// database does not hold.
type TaskService interface {
	// Create persists a new task and broadcasts taskCreated. When the task
	// is created already assigned to someone other than its creator, the
	// assignment side effects fire as well.
	Create(ctx context.Context, task *domain.Task) (*store.TaskView, error)

	// Get retrieves a single task with creator and assignee hydrated.
	Get(ctx context.Context, id uuid.UUID) (*store.TaskView, error)

	// List returns all tasks, newest-created first, hydrated.
	List(ctx context.Context) ([]*store.TaskView, error)

	// Update applies a partial update and broadcasts taskUpdated. When the
	// update hands the task to a new assignee, that user is notified.
	// actorID identifies the user performing the update; it becomes the
	// notification sender and is never notified about assigning to themself.
	Update(ctx context.Context, id, actorID uuid.UUID, patch *domain.TaskPatch) (*store.TaskView, error)

	// Delete removes a task and broadcasts taskDeleted. Only the task's
	// creator may delete it; anyone else gets domain.ErrForbidden.
	Delete(ctx context.Context, id, actorID uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore         store.TaskStore
	notificationStore store.NotificationStore
	publisher         EventPublisher
	logger            *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	notificationStore store.NotificationStore,
	publisher EventPublisher,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if notificationStore == nil {
		return nil, domain.NewValidationError("notificationStore", "cannot be nil", domain.ErrValidation)
	}
	if publisher == nil {
		return nil, domain.NewValidationError("publisher", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:         taskStore,
		notificationStore: notificationStore,
		publisher:         publisher,
		logger:            logger.With(slog.String("component", "task_service")),
	}, nil
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(ctx context.Context, task *domain.Task) (*store.TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, NewTaskServiceError("create", "failed to save task", err)
	}

	view, err := s.taskStore.GetByID(ctx, task.ID)
	if err != nil {
		return nil, NewTaskServiceError("create", "failed to load created task", err)
	}

	s.publisher.Broadcast(realtime.EventTaskCreated, view)

	if task.AssignedToID != nil && *task.AssignedToID != task.CreatorID {
		s.notifyAssignment(ctx, view, task.CreatorID,
			"You have been assigned a new task: "+task.Title,
			"New task assigned: "+task.Title)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("creator_id", task.CreatorID.String()))
	return view, nil
}

// Get implements TaskService.Get
func (s *taskServiceImpl) Get(ctx context.Context, id uuid.UUID) (*store.TaskView, error) {
	view, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("get", "failed to load task", err)
	}
	return view, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(ctx context.Context) ([]*store.TaskView, error) {
	views, err := s.taskStore.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list", "failed to list tasks", err)
	}
	return views, nil
}

// Update implements TaskService.Update
func (s *taskServiceImpl) Update(
	ctx context.Context,
	id, actorID uuid.UUID,
	patch *domain.TaskPatch,
) (*store.TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	current, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("update", "failed to load task", err)
	}

	var previousAssignee *uuid.UUID
	if current.AssignedToID != nil {
		prev := *current.AssignedToID
		previousAssignee = &prev
	}

	task := current.Task
	if err := patch.Apply(&task); err != nil {
		return nil, err
	}

	if err := s.taskStore.Update(ctx, &task); err != nil {
		return nil, NewTaskServiceError("update", "failed to save task", err)
	}

	// Re-read so the response and the broadcast carry the new assignee's
	// hydrated summary, not a stale one.
	view, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("update", "failed to load updated task", err)
	}

	s.publisher.Broadcast(realtime.EventTaskUpdated, view)

	if assigneeChanged(previousAssignee, view.AssignedToID) && *view.AssignedToID != actorID {
		s.notifyAssignment(ctx, view, actorID,
			"You have been assigned to task: "+view.Title,
			"Task assigned: "+view.Title)
	}

	log.Info("task updated",
		slog.String("task_id", id.String()),
		slog.String("actor_id", actorID.String()))
	return view, nil
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	view, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return NewTaskServiceError("delete", "failed to load task", err)
	}

	if view.CreatorID != actorID {
		log.Warn("delete refused for non-creator",
			slog.String("task_id", id.String()),
			slog.String("actor_id", actorID.String()))
		return domain.ErrForbidden
	}

	if err := s.taskStore.Delete(ctx, id); err != nil {
		return NewTaskServiceError("delete", "failed to delete task", err)
	}

	s.publisher.Broadcast(realtime.EventTaskDeleted, realtime.TaskDeletedPayload{ID: id})

	log.Info("task deleted",
		slog.String("task_id", id.String()),
		slog.String("actor_id", actorID.String()))
	return nil
}

// assigneeChanged reports whether the assignment moved to a new non-nil user.
// Clearing the assignee never counts as a change worth notifying about.
func assigneeChanged(previous, next *uuid.UUID) bool {
	if next == nil {
		return false
	}
	return previous == nil || *previous != *next
}

// notifyAssignment persists an Assignment notification for the task's
// assignee and pushes the targeted events. A notification that fails to
// persist is logged and skipped; the task write has already succeeded and is
// not rolled back for a side effect. The taskAssigned push fires regardless
// since it reports task state, not notification state.
func (s *taskServiceImpl) notifyAssignment(
	ctx context.Context,
	view *store.TaskView,
	senderID uuid.UUID,
	message, pushMessage string,
) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	recipientID := *view.AssignedToID

	notification, err := domain.NewNotification(
		recipientID,
		&senderID,
		message,
		domain.NotificationAssignment,
		"/tasks/"+view.ID.String(),
	)
	if err != nil {
		log.Error("failed to build assignment notification",
			slog.String("task_id", view.ID.String()),
			slog.String("error", err.Error()))
	} else if err := s.notificationStore.Create(ctx, notification); err != nil {
		log.Error("failed to save assignment notification",
			slog.String("task_id", view.ID.String()),
			slog.String("recipient_id", recipientID.String()),
			slog.String("error", err.Error()))
	} else {
		s.publisher.SendToUser(recipientID, realtime.EventNotificationReceived,
			realtime.NotificationPayload{Message: pushMessage})
	}

	s.publisher.SendToUser(recipientID, realtime.EventTaskAssigned, view)
}
