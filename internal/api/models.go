package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// Token is the JWT bearer token used for API authorization
	Token string `json:"token"`

	// User is the sanitized identity of the authenticated user
	User domain.UserSummary `json:"user"`
}

// CreateTaskRequest defines the payload for task creation. Status is not
// accepted: every task starts at "To Do". Priority defaults to Medium when
// omitted; valid values are checked against the domain, not a struct tag.
type CreateTaskRequest struct {
	Title        string     `json:"title"          validate:"required,max=100"`
	Description  string     `json:"description"`
	DueDate      *time.Time `json:"due_date"`
	Priority     string     `json:"priority"`
	AssignedToID *uuid.UUID `json:"assigned_to_id"`
}

// UpdateTaskRequest defines the payload for partial task updates. Absent
// fields are left unchanged. AssignedToID follows the same convention the
// web client sends: a UUID string assigns, an empty string unassigns, and an
// absent field leaves the assignment alone.
type UpdateTaskRequest struct {
	Title        *string    `json:"title"          validate:"omitempty,min=1,max=100"`
	Description  *string    `json:"description"`
	DueDate      *time.Time `json:"due_date"`
	Priority     *string    `json:"priority"`
	Status       *string    `json:"status"`
	AssignedToID *string    `json:"assigned_to_id"`
}

// MarkAllReadResponse reports how many notifications were acknowledged.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
