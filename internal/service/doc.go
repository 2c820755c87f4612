// Package service contains the task use cases. It sits between the HTTP
// handlers in internal/api and the store interfaces in internal/store and
// never depends on a concrete storage implementation.
//
// The task service enforces the existence-before-mutation rule: updates and
// deletes check that the task exists and return ErrTaskNotFound without
// touching the store when it does not. Reads of a missing task return a nil
// task and a nil error, which the API renders as an empty object.
//
// The existence check and the mutation are not atomic. A task deleted
// between the two surfaces as ErrTaskNotFound through the store's
// zero-rows signal.
package service
