package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task. The set is closed.
type TaskStatus int

// Possible task status values
const (
	TaskStatusPending    TaskStatus = 0
	TaskStatusInProgress TaskStatus = 1
	TaskStatusDone       TaskStatus = 2
)

// TaskStatuses lists every valid status in ascending order.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusDone}

// IsValid reports whether s is a member of the status set.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// String returns the status label.
func (s TaskStatus) String() string {
	switch s {
	case TaskStatusPending:
		return "pending"
	case TaskStatusInProgress:
		return "in_progress"
	case TaskStatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// Task is the primary managed record. ID, CreatedAt and UpdatedAt are
// assigned by the store and never set by callers.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status" jsonschema:"enum=0,enum=1,enum=2"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	OwnerID     *uuid.UUID `json:"createdBy"`
}

// TaskCandidate holds the externally settable fields of a task.
type TaskCandidate struct {
	Title       string
	Description string
	Status      TaskStatus
}

// Validate checks the candidate against the task invariants.
// Returns the first failing field as a *ValidationError.
func (c TaskCandidate) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}
	if strings.TrimSpace(c.Description) == "" {
		return NewValidationError("description", "is required", ErrEmptyDescription)
	}
	if !c.Status.IsValid() {
		return NewValidationError("status", "must be one of 0, 1, 2", ErrInvalidTaskStatus)
	}
	return nil
}

// NewTask builds an unsaved task from a validated candidate.
func NewTask(c TaskCandidate, ownerID *uuid.UUID) (*Task, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Task{
		Title:       c.Title,
		Description: c.Description,
		Status:      c.Status,
		OwnerID:     ownerID,
	}, nil
}

// Apply overwrites the settable fields of t with c.
func (t *Task) Apply(c TaskCandidate) {
	t.Title = c.Title
	t.Description = c.Description
	t.Status = c.Status
}
