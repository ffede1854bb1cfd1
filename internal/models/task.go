package models

import (
	"github.com/google/uuid"
)

// Task represents a to-do item owned by exactly one user.
type Task struct {
	ID            uuid.UUID `json:"id" db:"id"`                           // Primary key
	Name          string    `json:"name" db:"name"`                       // Required title
	Description   *string   `json:"description" db:"description"`         // Optional details
	Done          bool      `json:"done" db:"done"`                       // Completion flag
	AlertDateTime *DateTime `json:"alert_date_time" db:"alert_date_time"` // Optional reminder instant
	UserID        uuid.UUID `json:"-" db:"user_id"`                       // Owner, immutable
}

// TaskCreate carries the fields of a new task.
type TaskCreate struct {
	Name          string
	Description   *string
	AlertDateTime *DateTime
	UserID        uuid.UUID
}

// TaskUpdate carries the optional fields of a partial task update.
// A nil field is left untouched; the owner can never change.
type TaskUpdate struct {
	Name          *string
	Description   *string
	AlertDateTime *DateTime
	Done          *bool
}

// IsEmpty reports whether the update contains no fields at all.
func (u TaskUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.AlertDateTime == nil && u.Done == nil
}
