package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestUserValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user User
		want error
	}{
		{"valid", User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}, nil},
		{"missing name", User{Email: "ada@example.com"}, ErrEmptyUserName},
		{"missing email", User{Name: "Ada"}, ErrEmptyEmail},
		{"bad email", User{Name: "Ada", Email: "not-an-email"}, ErrInvalidEmail},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.user.Validate(); err != tc.want {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}
