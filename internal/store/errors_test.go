package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrTaskNotFound", ErrTaskNotFound, true},
		{"wrapped ErrTaskNotFound", fmt.Errorf("failed to find task: %w", ErrTaskNotFound), true},
		{"ErrUserNotFound", ErrUserNotFound, true},
		{"duplicate is not not-found", ErrEmailExists, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsNotFoundError(tc.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(fmt.Errorf("insert: %w", ErrEmailExists)))
	assert.False(t, IsDuplicateError(ErrTaskNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	err := NewStoreError("task", "update", "no rows", ErrTaskNotFound)
	assert.Equal(t, "update operation on task failed: no rows: entity not found: task", err.Error())
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	bare := NewStoreError("user", "insert", "rejected", nil)
	assert.Equal(t, "insert operation on user failed: rejected", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
