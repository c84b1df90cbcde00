package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/mocks"
	"github.com/taskhive/taskhive-api/internal/realtime"
	"github.com/taskhive/taskhive-api/internal/service"
	"github.com/taskhive/taskhive-api/internal/store"
)

type taskServiceFixture struct {
	taskStore         *mocks.MockTaskStore
	notificationStore *mocks.MockNotificationStore
	publisher         *mocks.MockEventPublisher
	service           service.TaskService
}

func newTaskServiceFixture(t *testing.T) *taskServiceFixture {
	t.Helper()

	f := &taskServiceFixture{
		taskStore:         mocks.NewMockTaskStore(),
		notificationStore: mocks.NewMockNotificationStore(),
		publisher:         &mocks.MockEventPublisher{},
	}

	svc, err := service.NewTaskService(f.taskStore, f.notificationStore, f.publisher, nil)
	require.NoError(t, err)
	f.service = svc
	return f
}

func newTestTask(t *testing.T, creatorID uuid.UUID, assigneeID *uuid.UUID) *domain.Task {
	t.Helper()
	task, err := domain.NewTask("Ship the release", "cut and tag", nil, "", creatorID, assigneeID)
	require.NoError(t, err)
	return task
}

func TestTaskServiceCreateBroadcastsTaskCreated(t *testing.T) {
	f := newTaskServiceFixture(t)
	creatorID := uuid.New()
	task := newTestTask(t, creatorID, nil)

	view, err := f.service.Create(context.Background(), task)
	require.NoError(t, err)
	assert.Equal(t, task.ID, view.ID)

	require.Equal(t, []string{realtime.EventTaskCreated}, f.publisher.EventNames())
	assert.Equal(t, uuid.Nil, f.publisher.Events[0].UserID, "taskCreated is a broadcast")
	assert.Empty(t, f.notificationStore.Notifications)
}

func TestTaskServiceCreateWithAssigneeNotifies(t *testing.T) {
	f := newTaskServiceFixture(t)
	creatorID := uuid.New()
	assigneeID := uuid.New()
	task := newTestTask(t, creatorID, &assigneeID)

	_, err := f.service.Create(context.Background(), task)
	require.NoError(t, err)

	// Broadcast first, then the targeted pair
	require.Equal(t, []string{
		realtime.EventTaskCreated,
		realtime.EventNotificationReceived,
		realtime.EventTaskAssigned,
	}, f.publisher.EventNames())

	targeted := f.publisher.EventsFor(assigneeID)
	require.Len(t, targeted, 2)
	payload, ok := targeted[0].Data.(realtime.NotificationPayload)
	require.True(t, ok)
	assert.Equal(t, "New task assigned: Ship the release", payload.Message)

	// The persisted notification carries the long-form message and a link
	require.Len(t, f.notificationStore.Notifications, 1)
	n := f.notificationStore.Notifications[0]
	assert.Equal(t, assigneeID, n.RecipientID)
	require.NotNil(t, n.SenderID)
	assert.Equal(t, creatorID, *n.SenderID)
	assert.Equal(t, "You have been assigned a new task: Ship the release", n.Message)
	assert.Equal(t, "/tasks/"+task.ID.String(), n.Link)
	assert.Equal(t, domain.NotificationAssignment, n.Type)
	assert.False(t, n.Read)
}

func TestTaskServiceCreateSelfAssignedSkipsNotification(t *testing.T) {
	f := newTaskServiceFixture(t)
	creatorID := uuid.New()
	task := newTestTask(t, creatorID, &creatorID)

	_, err := f.service.Create(context.Background(), task)
	require.NoError(t, err)

	assert.Equal(t, []string{realtime.EventTaskCreated}, f.publisher.EventNames())
	assert.Empty(t, f.notificationStore.Notifications)
}

func TestTaskServiceCreateStoreFailureEmitsNothing(t *testing.T) {
	f := newTaskServiceFixture(t)
	f.taskStore.CreateError = errors.New("connection refused")
	task := newTestTask(t, uuid.New(), nil)

	_, err := f.service.Create(context.Background(), task)
	require.Error(t, err)

	assert.Empty(t, f.publisher.Events, "no events may fire before the store write succeeds")
}

func TestTaskServiceCreateNotificationFailureStillSendsTaskAssigned(t *testing.T) {
	f := newTaskServiceFixture(t)
	f.notificationStore.CreateError = errors.New("connection refused")
	assigneeID := uuid.New()
	task := newTestTask(t, uuid.New(), &assigneeID)

	_, err := f.service.Create(context.Background(), task)
	require.NoError(t, err, "a failed notification side effect must not fail task creation")

	// notificationReceived is suppressed because nothing was persisted
	assert.Equal(t, []string{
		realtime.EventTaskCreated,
		realtime.EventTaskAssigned,
	}, f.publisher.EventNames())
}

func TestTaskServiceUpdateBroadcastsTaskUpdated(t *testing.T) {
	f := newTaskServiceFixture(t)
	creatorID := uuid.New()
	task := newTestTask(t, creatorID, nil)
	require.NoError(t, f.taskStore.Create(context.Background(), task))

	newStatus := domain.StatusInProgress
	view, err := f.service.Update(context.Background(), task.ID, creatorID, &domain.TaskPatch{Status: &newStatus})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, view.Status)

	assert.Equal(t, []string{realtime.EventTaskUpdated}, f.publisher.EventNames())
	assert.Empty(t, f.notificationStore.Notifications)
}

func TestTaskServiceUpdateAssignmentChangeNotifies(t *testing.T) {
	f := newTaskServiceFixture(t)
	creatorID := uuid.New()
	assigneeID := uuid.New()
	task := newTestTask(t, creatorID, nil)
	require.NoError(t, f.taskStore.Create(context.Background(), task))

	_, err := f.service.Update(context.Background(), task.ID, creatorID, &domain.TaskPatch{AssignedToID: &assigneeID})
	require.NoError(t, err)

	require.Equal(t, []string{
		realtime.EventTaskUpdated,
		realtime.EventNotificationReceived,
		realtime.EventTaskAssigned,
	}, f.publisher.EventNames())

	targeted := f.publisher.EventsFor(assigneeID)
	require.Len(t, targeted, 2)
	payload, ok := targeted[0].Data.(realtime.NotificationPayload)
	require.True(t, ok)
	assert.Equal(t, "Task assigned: Ship the release", payload.Message)

	require.Len(t, f.notificationStore.Notifications, 1)
	assert.Equal(t, "You have been assigned to task: Ship the release", f.notificationStore.Notifications[0].Message)
}

func TestTaskServiceUpdateUnchangedAssigneeDoesNotNotify(t *testing.T) {
	f := newTaskServiceFixture(t)
	creatorID := uuid.New()
	assigneeID := uuid.New()
	task := newTestTask(t, creatorID, &assigneeID)
	require.NoError(t, f.taskStore.Create(context.Background(), task))

	newStatus := domain.StatusCompleted
	_, err := f.service.Update(context.Background(), task.ID, creatorID, &domain.TaskPatch{Status: &newStatus})
	require.NoError(t, err)

	assert.Equal(t, []string{realtime.EventTaskUpdated}, f.publisher.EventNames())
	assert.Empty(t, f.notificationStore.Notifications)
}

func TestTaskServiceUpdateClearAssigneeDoesNotNotify(t *testing.T) {
	f := newTaskServiceFixture(t)
	creatorID := uuid.New()
	assigneeID := uuid.New()
	task := newTestTask(t, creatorID, &assigneeID)
	require.NoError(t, f.taskStore.Create(context.Background(), task))

	_, err := f.service.Update(context.Background(), task.ID, creatorID, &domain.TaskPatch{ClearAssignee: true})
	require.NoError(t, err)

	assert.Equal(t, []string{realtime.EventTaskUpdated}, f.publisher.EventNames())
	assert.Empty(t, f.notificationStore.Notifications)
}

func TestTaskServiceUpdateSelfAssignmentDoesNotNotify(t *testing.T) {
	f := newTaskServiceFixture(t)
	actorID := uuid.New()
	task := newTestTask(t, uuid.New(), nil)
	require.NoError(t, f.taskStore.Create(context.Background(), task))

	_, err := f.service.Update(context.Background(), task.ID, actorID, &domain.TaskPatch{AssignedToID: &actorID})
	require.NoError(t, err)

	assert.Equal(t, []string{realtime.EventTaskUpdated}, f.publisher.EventNames())
	assert.Empty(t, f.notificationStore.Notifications)
}

func TestTaskServiceUpdateNotFound(t *testing.T) {
	f := newTaskServiceFixture(t)

	_, err := f.service.Update(context.Background(), uuid.New(), uuid.New(), &domain.TaskPatch{})
	require.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.Empty(t, f.publisher.Events)
}

func TestTaskServiceDelete(t *testing.T) {
	f := newTaskServiceFixture(t)
	creatorID := uuid.New()
	task := newTestTask(t, creatorID, nil)
	require.NoError(t, f.taskStore.Create(context.Background(), task))

	require.NoError(t, f.service.Delete(context.Background(), task.ID, creatorID))

	require.Equal(t, []string{realtime.EventTaskDeleted}, f.publisher.EventNames())
	payload, ok := f.publisher.Events[0].Data.(realtime.TaskDeletedPayload)
	require.True(t, ok)
	assert.Equal(t, task.ID, payload.ID)
}

func TestTaskServiceDeleteByNonCreatorForbidden(t *testing.T) {
	f := newTaskServiceFixture(t)
	task := newTestTask(t, uuid.New(), nil)
	require.NoError(t, f.taskStore.Create(context.Background(), task))

	err := f.service.Delete(context.Background(), task.ID, uuid.New())
	require.ErrorIs(t, err, domain.ErrForbidden)

	assert.Empty(t, f.publisher.Events)
	_, getErr := f.taskStore.GetByID(context.Background(), task.ID)
	assert.NoError(t, getErr, "task must survive a forbidden delete")
}
