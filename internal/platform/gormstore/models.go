package gormstore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	"gorm.io/gorm"
)

// taskRecord is the persisted shape of a task.
type taskRecord struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title       string     `gorm:"not null;check:title <> ''"`
	Description string     `gorm:"not null;check:description <> ''"`
	Status      int16      `gorm:"not null;index;check:status >= 0 AND status <= 2"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
	CreatedBy   *uuid.UUID `gorm:"column:created_by;type:uuid;index"`
}

// TableName returns the table name for taskRecord.
func (taskRecord) TableName() string {
	return "tasks"
}

// BeforeCreate assigns the ID and rejects statuses outside the closed set.
func (r *taskRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if !domain.TaskStatus(r.Status).IsValid() {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidTaskStatus)
	}
	return nil
}

func (r *taskRecord) toDomain() *domain.Task {
	task := &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.TaskStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.CreatedBy != nil {
		owner := *r.CreatedBy
		task.OwnerID = &owner
	}
	return task
}

func taskFromDomain(t *domain.Task) *taskRecord {
	return &taskRecord{
		Title:       t.Title,
		Description: t.Description,
		Status:      int16(t.Status),
		CreatedBy:   t.OwnerID,
	}
}

// userRecord is the persisted shape of a user. Deleting a user clears the
// owner of its tasks.
type userRecord struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name      string       `gorm:"not null"`
	Email     string       `gorm:"not null;uniqueIndex"`
	Password  string       `gorm:"not null;default:''"`
	CreatedAt time.Time    `gorm:"not null"`
	UpdatedAt time.Time    `gorm:"not null"`
	Tasks     []taskRecord `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for userRecord.
func (userRecord) TableName() string {
	return "users"
}

// BeforeCreate assigns the ID.
func (r *userRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// AutoMigrate creates or updates the users and tasks tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userRecord{}, &taskRecord{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
