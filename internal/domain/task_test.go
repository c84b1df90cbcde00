package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	creatorID := uuid.New()

	task, err := NewTask("Write release notes", "for the next release", nil, "", creatorID, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	// Status always starts at To Do
	if task.Status != StatusToDo {
		t.Errorf("Expected status %q, got %q", StatusToDo, task.Status)
	}

	// Priority defaults to Medium when empty
	if task.Priority != PriorityMedium {
		t.Errorf("Expected priority %q, got %q", PriorityMedium, task.Priority)
	}

	if task.CreatorID != creatorID {
		t.Errorf("Expected creator %s, got %s", creatorID, task.CreatorID)
	}

	// Test explicit priority
	task, err = NewTask("Hotfix", "", nil, PriorityUrgent, creatorID, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Priority != PriorityUrgent {
		t.Errorf("Expected priority %q, got %q", PriorityUrgent, task.Priority)
	}

	// Test empty title
	_, err = NewTask("", "", nil, "", creatorID, nil)
	if !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected error %v, got %v", ErrEmptyTitle, err)
	}

	// Test over-long title
	_, err = NewTask(strings.Repeat("a", 101), "", nil, "", creatorID, nil)
	if !errors.Is(err, ErrTitleTooLong) {
		t.Errorf("Expected error %v, got %v", ErrTitleTooLong, err)
	}

	// Test unknown priority
	_, err = NewTask("Task", "", nil, "Critical", creatorID, nil)
	if !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Expected error %v, got %v", ErrInvalidPriority, err)
	}

	// Test missing creator
	_, err = NewTask("Task", "", nil, "", uuid.Nil, nil)
	if !errors.Is(err, ErrEmptyCreatorID) {
		t.Errorf("Expected error %v, got %v", ErrEmptyCreatorID, err)
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	for _, status := range []TaskStatus{StatusToDo, StatusInProgress, StatusReview, StatusCompleted} {
		if !status.IsValid() {
			t.Errorf("Expected status %q to be valid", status)
		}
	}

	if TaskStatus("Done").IsValid() {
		t.Error("Expected status Done to be invalid")
	}
}

func TestTaskIsAssignedTo(t *testing.T) {
	userID := uuid.New()
	task := Task{AssignedToID: &userID}

	if !task.IsAssignedTo(userID) {
		t.Error("Expected task to be assigned to user")
	}
	if task.IsAssignedTo(uuid.New()) {
		t.Error("Expected task not to be assigned to a different user")
	}

	task.AssignedToID = nil
	if task.IsAssignedTo(userID) {
		t.Error("Expected unassigned task not to be assigned to anyone")
	}
}

func TestTaskPatchApply(t *testing.T) {
	creatorID := uuid.New()
	assigneeID := uuid.New()

	task, err := NewTask("Original", "original description", nil, PriorityLow, creatorID, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	originalUpdatedAt := task.UpdatedAt

	newTitle := "Updated"
	newStatus := StatusInProgress
	due := time.Now().UTC().Add(24 * time.Hour)

	patch := &TaskPatch{
		Title:        &newTitle,
		Status:       &newStatus,
		DueDate:      &due,
		AssignedToID: &assigneeID,
	}

	if err := patch.Apply(task); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Title != newTitle {
		t.Errorf("Expected title %q, got %q", newTitle, task.Title)
	}
	if task.Status != newStatus {
		t.Errorf("Expected status %q, got %q", newStatus, task.Status)
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Errorf("Expected due date %v, got %v", due, task.DueDate)
	}
	if task.AssignedToID == nil || *task.AssignedToID != assigneeID {
		t.Errorf("Expected assignee %s, got %v", assigneeID, task.AssignedToID)
	}
	// Untouched fields stay put
	if task.Description != "original description" {
		t.Errorf("Expected description unchanged, got %q", task.Description)
	}
	if task.Priority != PriorityLow {
		t.Errorf("Expected priority unchanged, got %q", task.Priority)
	}
	if !task.UpdatedAt.After(originalUpdatedAt) && !task.UpdatedAt.Equal(originalUpdatedAt) {
		t.Error("Expected UpdatedAt to be refreshed")
	}
}

func TestTaskPatchApplyClearAssignee(t *testing.T) {
	creatorID := uuid.New()
	assigneeID := uuid.New()

	task, err := NewTask("Task", "", nil, "", creatorID, &assigneeID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	patch := &TaskPatch{ClearAssignee: true}
	if err := patch.Apply(task); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.AssignedToID != nil {
		t.Errorf("Expected assignee cleared, got %v", task.AssignedToID)
	}
}

func TestTaskPatchApplyInvalidLeavesTaskUntouched(t *testing.T) {
	creatorID := uuid.New()

	task, err := NewTask("Task", "", nil, "", creatorID, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	before := *task

	badStatus := TaskStatus("Done")
	patch := &TaskPatch{Status: &badStatus}

	if err := patch.Apply(task); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("Expected error %v, got %v", ErrInvalidStatus, err)
	}

	if *task != before {
		t.Error("Expected task unchanged after failed patch")
	}
}
