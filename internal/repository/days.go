package repository

import (
	"context"

	"github.com/arnold/habits-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListDays loads the user's materialized days in [start, end] with their
// tasks and score, ascending by date.
func (s *Store) ListDays(ctx context.Context, userID uuid.UUID, start, end string) ([]models.PlannedDay, error) {
	var days []models.PlannedDay
	err := s.conn(ctx).
		Preload("Tasks", orderTasks).
		Preload("Result").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Find(&days).Error
	return days, err
}

func (s *Store) GetDay(ctx context.Context, userID uuid.UUID, date string) (models.PlannedDay, error) {
	var day models.PlannedDay
	err := s.conn(ctx).
		Preload("Tasks", orderTasks).
		Preload("Result").
		Where("user_id = ? AND date = ?", userID, date).
		First(&day).Error
	if err != nil {
		return models.PlannedDay{}, translate(err)
	}
	return day, nil
}

// GetOrCreateDay returns the (user, date) day, inserting it if absent.
// created is false when another caller got there first.
func (s *Store) GetOrCreateDay(ctx context.Context, userID uuid.UUID, date string) (day models.PlannedDay, created bool, err error) {
	candidate := models.PlannedDay{UserID: userID, Date: date, Status: models.DayIncomplete}
	res := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&candidate)
	if res.Error != nil {
		return models.PlannedDay{}, false, res.Error
	}

	if err := s.conn(ctx).Where("user_id = ? AND date = ?", userID, date).First(&day).Error; err != nil {
		return models.PlannedDay{}, false, translate(err)
	}
	return day, res.RowsAffected > 0, nil
}

func (s *Store) UpdateDayStatus(ctx context.Context, dayID uuid.UUID, status models.DayStatus) error {
	return s.conn(ctx).Model(&models.PlannedDay{}).
		Where("id = ?", dayID).
		Update("status", status).Error
}

// UpsertDayResult stores the day's score, one row per day.
func (s *Store) UpsertDayResult(ctx context.Context, dayID uuid.UUID, score int) (models.DayResult, error) {
	result := models.DayResult{PlannedDayID: dayID, Score: score}
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "planned_day_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(&result).Error
	if err != nil {
		return models.DayResult{}, err
	}

	var stored models.DayResult
	if err := s.conn(ctx).Where("planned_day_id = ?", dayID).First(&stored).Error; err != nil {
		return models.DayResult{}, translate(err)
	}
	return stored, nil
}

func orderTasks(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, created_at ASC")
}
