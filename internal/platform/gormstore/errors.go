package gormstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/task-api/internal/store"
	"gorm.io/gorm"
)

// mapError translates a GORM error into a store error. notFound is
// returned for gorm.ErrRecordNotFound.
func mapError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, store.ErrInvalidEntity):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	case strings.Contains(err.Error(), "CHECK constraint failed"),
		strings.Contains(err.Error(), "NOT NULL constraint failed"):
		// sqlite does not translate these codes.
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	default:
		return err
	}
}
