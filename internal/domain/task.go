package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common task validation errors
var (
	ErrEmptyTaskID    = errors.New("task ID cannot be empty")
	ErrEmptyTitle     = errors.New("task title cannot be empty")
	ErrTitleTooLong   = errors.New("task title must be at most 100 characters")
	ErrEmptyCreatorID = errors.New("task creator ID cannot be empty")
)

// maxTitleLength is the upper bound on task titles.
const maxTitleLength = 100

// TaskPriority indicates how urgent a task is.
type TaskPriority string

// Valid task priorities.
const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

// IsValid reports whether the priority is one of the known levels.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TaskStatus indicates where a task is in its lifecycle.
type TaskStatus string

// Valid task statuses.
const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusReview     TaskStatus = "Review"
	StatusCompleted  TaskStatus = "Completed"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// Task represents a unit of work created by one user and optionally assigned
// to another. CreatorID is fixed at creation and never changes; AssignedToID
// is optional and mutable.
type Task struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	DueDate      *time.Time   `json:"due_date,omitempty"`
	Priority     TaskPriority `json:"priority"`
	Status       TaskStatus   `json:"status"`
	CreatorID    uuid.UUID    `json:"creator_id"`
	AssignedToID *uuid.UUID   `json:"assigned_to_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewTask creates a new Task owned by creatorID. Status always starts at
// "To Do"; priority defaults to Medium when empty. Returns an error if
// validation fails.
func NewTask(
	title, description string,
	dueDate *time.Time,
	priority TaskPriority,
	creatorID uuid.UUID,
	assignedToID *uuid.UUID,
) (*Task, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	task := &Task{
		ID:           uuid.New(),
		Title:        title,
		Description:  description,
		DueDate:      dueDate,
		Priority:     priority,
		Status:       StatusToDo,
		CreatorID:    creatorID,
		AssignedToID: assignedToID,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Title == "" {
		return ErrEmptyTitle
	}

	if len(t.Title) > maxTitleLength {
		return ErrTitleTooLong
	}

	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}

	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}

	if t.CreatorID == uuid.Nil {
		return ErrEmptyCreatorID
	}

	return nil
}

// IsAssignedTo reports whether the task is currently assigned to userID.
func (t *Task) IsAssignedTo(userID uuid.UUID) bool {
	return t.AssignedToID != nil && *t.AssignedToID == userID
}

// TaskPatch describes a partial update to a task. Nil fields are left
// unchanged. CreatorID and ID are deliberately absent: both are immutable.
type TaskPatch struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	Priority     *TaskPriority
	Status       *TaskStatus
	AssignedToID *uuid.UUID
	// ClearAssignee distinguishes "unassign" from "leave assignment alone",
	// which a nil AssignedToID cannot express on its own.
	ClearAssignee bool
}

// Apply overlays the patch onto the task in place and refreshes UpdatedAt.
// Returns a validation error if the resulting task is invalid; the task is
// not modified in that case.
func (p *TaskPatch) Apply(t *Task) error {
	updated := *t

	if p.Title != nil {
		updated.Title = *p.Title
	}
	if p.Description != nil {
		updated.Description = *p.Description
	}
	if p.DueDate != nil {
		updated.DueDate = p.DueDate
	}
	if p.Priority != nil {
		updated.Priority = *p.Priority
	}
	if p.Status != nil {
		updated.Status = *p.Status
	}
	if p.ClearAssignee {
		updated.AssignedToID = nil
	} else if p.AssignedToID != nil {
		updated.AssignedToID = p.AssignedToID
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return err
	}

	*t = updated
	return nil
}
