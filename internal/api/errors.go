package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes:
// validation failures to 400, missing tasks to 404, everything else to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// TaskNotFoundMessage is the 404 error text for a task id.
func TaskNotFoundMessage(id string) string {
	return fmt.Sprintf("Task with id %s not found", id)
}

// HandleAPIError writes the response for err. notFoundMessage is used as
// the error text of a 404; 500 responses carry the redacted error message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	status := MapErrorToStatusCode(err)
	switch status {
	case http.StatusBadRequest:
		shared.RespondWithValidationError(w, r, ValidationFields(err), err)
	case http.StatusNotFound:
		if notFoundMessage == "" {
			notFoundMessage = "Not found"
		}
		shared.RespondWithErrorAndLog(w, r, status, notFoundMessage, err)
	default:
		shared.RespondWithErrorAndLog(w, r, status, redact.Error(err), err)
	}
}

// ValidationFields extracts per-field messages from a validation failure.
func ValidationFields(err error) map[string]string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return map[string]string{vErr.Field: vErr.Message}
	}
	return shared.FieldErrors(err)
}
