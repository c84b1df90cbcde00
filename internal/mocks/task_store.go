package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*store.TaskView, error)
	ListFn    func(ctx context.Context) ([]*store.TaskView, error)
	UpdateFn  func(ctx context.Context, task *domain.Task) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Views       map[uuid.UUID]*store.TaskView
	CreateError error
	UpdateError error
	DeleteError error
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Views: make(map[uuid.UUID]*store.TaskView),
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Views[task.ID] = &store.TaskView{Task: *task}
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*store.TaskView, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if view, ok := m.Views[id]; ok {
		return view, nil
	}
	return nil, store.ErrTaskNotFound
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context) ([]*store.TaskView, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	views := []*store.TaskView{}
	for _, view := range m.Views {
		views = append(views, view)
	}
	return views, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	view, ok := m.Views[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}
	view.Task = *task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if m.DeleteError != nil {
		return m.DeleteError
	}

	if _, ok := m.Views[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.Views, id)
	return nil
}
