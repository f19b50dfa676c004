package repository

import (
	"context"
	"time"

	"github.com/arnold/habits-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateHabit inserts the habit together with its schedule rows.
func (s *Store) CreateHabit(ctx context.Context, habit *models.Habit) error {
	return s.conn(ctx).Create(habit).Error
}

func (s *Store) GetHabit(ctx context.Context, userID, habitID uuid.UUID) (models.Habit, error) {
	var habit models.Habit
	err := s.conn(ctx).
		Preload("Schedules", orderByWeekday).
		Preload("Streak").
		Where("id = ? AND user_id = ?", habitID, userID).
		First(&habit).Error
	if err != nil {
		return models.Habit{}, translate(err)
	}
	return habit, nil
}

func (s *Store) ListHabits(ctx context.Context, userID uuid.UUID) ([]models.Habit, error) {
	var habits []models.Habit
	err := s.conn(ctx).
		Preload("Schedules", orderByWeekday).
		Preload("Streak").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&habits).Error
	return habits, err
}

// ScheduledHabits returns the user's unarchived habits with only their
// active schedule rows loaded, oldest habit first.
func (s *Store) ScheduledHabits(ctx context.Context, userID uuid.UUID) ([]models.Habit, error) {
	var habits []models.Habit
	err := s.conn(ctx).
		Preload("Schedules", "is_active = ?", true).
		Where("user_id = ? AND is_archived = ?", userID, false).
		Order("created_at ASC, id ASC").
		Find(&habits).Error
	return habits, err
}

// SaveHabit writes the habit's own columns, leaving schedules untouched.
func (s *Store) SaveHabit(ctx context.Context, habit *models.Habit) error {
	return s.conn(ctx).Omit(clause.Associations).Save(habit).Error
}

// ReplaceSchedule deactivates every schedule row of the habit and then
// activates one row per requested weekday, reusing rows that already exist.
func (s *Store) ReplaceSchedule(ctx context.Context, habitID uuid.UUID, days []int) error {
	now := time.Now()
	err := s.conn(ctx).Model(&models.ScheduledHabit{}).
		Where("habit_id = ? AND is_active = ?", habitID, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": now}).Error
	if err != nil {
		return err
	}

	for _, day := range days {
		row := models.ScheduledHabit{HabitID: habitID, DayOfWeek: day, IsActive: true}
		err := s.conn(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "habit_id"}, {Name: "day_of_week"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"is_active": true, "updated_at": now}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func orderByWeekday(db *gorm.DB) *gorm.DB {
	return db.Order("day_of_week ASC")
}
