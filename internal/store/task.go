package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/domain"
)

// TaskView is the hydrated read projection of a task: the stored entity plus
// the referenced users expanded to sanitized summaries. The stored row holds
// bare IDs only; the view is what read responses carry.
type TaskView struct {
	domain.Task
	Creator  domain.UserSummary  `json:"creator"`
	Assignee *domain.UserSummary `json:"assignee,omitempty"`
}

// TaskStore defines the interface for task data persistence.
// Each operation is a single independent call; there is no multi-entity
// transaction wrapping at this layer.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if a referenced user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID with creator and assignee
	// hydrated. Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*TaskView, error)

	// List returns all tasks, newest-created first, hydrated.
	// Returns an empty slice when no tasks exist.
	List(ctx context.Context) ([]*TaskView, error)

	// Update persists the full state of an existing task (last write wins).
	// CreatorID and CreatedAt are never touched by the update statement.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
