package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HabitStreak tracks consecutive completion days for one habit.
// LongestStreak never decreases.
type HabitStreak struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_user_habit_streak,priority:1"`
	HabitID       uuid.UUID `json:"habitId" gorm:"type:uuid;not null;uniqueIndex:idx_user_habit_streak,priority:2"`
	CurrentStreak int       `json:"currentStreak" gorm:"not null"`
	LongestStreak int       `json:"longestStreak" gorm:"not null"`
	LastCompleted *string   `json:"lastCompleted" gorm:"type:varchar(10)"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (s *HabitStreak) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
