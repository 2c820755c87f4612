package api

import (
	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
)

// TaskRequest is the body of create and update requests. Status is a
// pointer so that a missing status is distinguishable from 0.
type TaskRequest struct {
	Title       string `json:"title"       validate:"required" jsonschema:"minLength=1"`
	Description string `json:"description" validate:"required" jsonschema:"minLength=1"`
	Status      *int   `json:"status"      validate:"required,oneof=0 1 2" jsonschema:"enum=0,enum=1,enum=2"`
}

// Candidate converts a validated request into the domain candidate.
func (r TaskRequest) Candidate() domain.TaskCandidate {
	c := domain.TaskCandidate{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Status != nil {
		c.Status = domain.TaskStatus(*r.Status)
	}
	return c
}

// CreateTaskResponse is the body of a successful create.
type CreateTaskResponse struct {
	ID uuid.UUID `json:"id"`
}
