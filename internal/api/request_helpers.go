package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
)

// validateIdentifier checks that raw is a UUID and parses it.
func validateIdentifier(raw string) (uuid.UUID, error) {
	if err := shared.Validate.Var(raw, "required,uuid"); err != nil {
		return uuid.Nil, domain.NewValidationError("id", "must be a valid UUID", domain.ErrInvalidID)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "must be a valid UUID", domain.ErrInvalidID)
	}
	return id, nil
}

// getPathUUID extracts and validates a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	return validateIdentifier(chi.URLParam(r, paramName))
}

// validateTaskInput decodes and validates a task request body.
// Unknown fields are dropped.
func validateTaskInput(w http.ResponseWriter, r *http.Request) (domain.TaskCandidate, error) {
	var req TaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		return domain.TaskCandidate{}, &requestError{err: err}
	}
	if err := shared.ValidateRequest(&req); err != nil {
		return domain.TaskCandidate{}, &requestError{err: err}
	}

	c := req.Candidate()
	if err := c.Validate(); err != nil {
		return domain.TaskCandidate{}, err
	}
	return c, nil
}

// requestError marks a decode or struct validation failure as a
// validation error while keeping the underlying error for field mapping.
type requestError struct {
	err error
}

func (e *requestError) Error() string {
	return "invalid request: " + e.err.Error()
}

// Unwrap exposes both the validation sentinel and the underlying error.
func (e *requestError) Unwrap() []error {
	return []error{domain.ErrValidation, e.err}
}
