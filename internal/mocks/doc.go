// Package mocks provides hand-written test doubles for the store and service
// interfaces.
//
// Each mock exposes one function field per interface method. When a field is
// set the mock delegates to it; otherwise it falls back to a simple default,
// which for MockTaskStore is an in-memory map of tasks.
//
//	tasks := mocks.NewMockTaskStore()
//	tasks.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
//	    return store.ErrTaskNotFound
//	}
package mocks
