package repository

import (
	"context"
	"errors"

	"github.com/arnold/habits-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetStreak returns nil, nil when the habit has no streak row yet.
func (s *Store) GetStreak(ctx context.Context, userID, habitID uuid.UUID) (*models.HabitStreak, error) {
	var streak models.HabitStreak
	err := s.forUpdate(s.conn(ctx)).
		Where("user_id = ? AND habit_id = ?", userID, habitID).
		First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

// UpsertStreak writes the streak keyed by (user, habit).
func (s *Store) UpsertStreak(ctx context.Context, streak *models.HabitStreak) error {
	return s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "habit_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_streak", "longest_streak", "last_completed", "updated_at"}),
	}).Create(streak).Error
}
