package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultQuantity applies wherever a habit or task has no usable quantity.
const DefaultQuantity = 1

// NormalizeQuantity returns q, or DefaultQuantity when q is below 1.
func NormalizeQuantity(q int) int {
	if q < 1 {
		return DefaultQuantity
	}
	return q
}

type Habit struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID        `json:"userId" gorm:"type:uuid;index;not null"`
	Title       string           `json:"title" gorm:"not null"`
	Description *string          `json:"description"`
	Color       *string          `json:"color"`
	Icon        *string          `json:"icon"`
	Quantity    int              `json:"quantity" gorm:"not null;default:1"`
	Unit        *string          `json:"unit"`
	IsArchived  bool             `json:"isArchived" gorm:"not null"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Schedules   []ScheduledHabit `json:"schedules,omitempty" gorm:"foreignKey:HabitID"`
	Streak      *HabitStreak     `json:"streak,omitempty" gorm:"foreignKey:HabitID"`
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// ActiveDays lists the weekdays (0 = Sunday) the habit is currently scheduled on.
func (h *Habit) ActiveDays() []int {
	days := []int{}
	for _, s := range h.Schedules {
		if s.IsActive {
			days = append(days, s.DayOfWeek)
		}
	}
	return days
}

// ScheduledHabit marks a habit as recurring on one weekday. Rows are
// deactivated rather than deleted when the schedule changes.
type ScheduledHabit struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	HabitID   uuid.UUID `json:"habitId" gorm:"type:uuid;not null;uniqueIndex:idx_habit_weekday,priority:1"`
	DayOfWeek int       `json:"dayOfWeek" gorm:"not null;uniqueIndex:idx_habit_weekday,priority:2"`
	IsActive  bool      `json:"isActive" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *ScheduledHabit) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Habit DTOs
type CreateHabitRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Quantity    *int    `json:"quantity"`
	Unit        *string `json:"unit"`
	DaysOfWeek  []int   `json:"daysOfWeek"`
}

type UpdateHabitRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Quantity    *int    `json:"quantity"`
	Unit        *string `json:"unit"`
}

type ScheduleRequest struct {
	DaysOfWeek []int `json:"daysOfWeek"`
}

type ArchiveHabitRequest struct {
	Archived bool `json:"archived"`
}
