package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskIncomplete TaskStatus = "incomplete"
	TaskComplete   TaskStatus = "complete"
	TaskSkipped    TaskStatus = "skipped"
)

// PlannedTask is a concrete per-day instance of a habit, or an ad hoc item
// when HabitID is nil. Title and description are copied from the habit when
// the task is materialized.
type PlannedTask struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	PlannedDayID      uuid.UUID  `json:"plannedDayId" gorm:"type:uuid;not null;uniqueIndex:idx_day_habit,priority:1"`
	HabitID           *uuid.UUID `json:"habitId" gorm:"type:uuid;uniqueIndex:idx_day_habit,priority:2"`
	Title             string     `json:"title" gorm:"not null"`
	Description       *string    `json:"description"`
	Quantity          int        `json:"quantity" gorm:"not null;default:1"`
	CompletedQuantity int        `json:"completedQuantity" gorm:"not null;default:0"`
	Unit              *string    `json:"unit"`
	Status            TaskStatus `json:"status" gorm:"type:varchar(16);not null;default:'incomplete'"`
	CompletedAt       *time.Time `json:"completedAt"`
	SortOrder         int        `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (t *PlannedTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskIncomplete
	}
	t.Quantity = NormalizeQuantity(t.Quantity)
	return nil
}

// Target is the quantity that completes the task.
func (t PlannedTask) Target() int {
	return NormalizeQuantity(t.Quantity)
}

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity"`
	Unit        *string `json:"unit"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}
