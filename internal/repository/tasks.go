package repository

import (
	"context"

	"github.com/arnold/habits-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// CreateTaskIfAbsent inserts the task unless its day already has a task
// for the same habit. Ad hoc tasks (no habit) are always inserted.
func (s *Store) CreateTaskIfAbsent(ctx context.Context, task *models.PlannedTask) (bool, error) {
	res := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "planned_day_id"}, {Name: "habit_id"}},
		DoNothing: true,
	}).Create(task)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetTaskForUser loads a task and its day, but only when the day belongs
// to userID. Inside a postgres transaction the task and day rows are locked.
func (s *Store) GetTaskForUser(ctx context.Context, userID, taskID uuid.UUID) (models.PlannedTask, models.PlannedDay, error) {
	var task models.PlannedTask
	err := s.forUpdate(s.conn(ctx)).
		Joins("JOIN planned_days ON planned_days.id = planned_tasks.planned_day_id").
		Where("planned_tasks.id = ? AND planned_days.user_id = ?", taskID, userID).
		First(&task).Error
	if err != nil {
		return models.PlannedTask{}, models.PlannedDay{}, translate(err)
	}

	var day models.PlannedDay
	if err := s.conn(ctx).First(&day, "id = ?", task.PlannedDayID).Error; err != nil {
		return models.PlannedTask{}, models.PlannedDay{}, translate(err)
	}
	return task, day, nil
}

func (s *Store) DayTasks(ctx context.Context, dayID uuid.UUID) ([]models.PlannedTask, error) {
	var tasks []models.PlannedTask
	err := s.conn(ctx).
		Where("planned_day_id = ?", dayID).
		Order("sort_order ASC, created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// SaveTaskState writes the completion columns, including nil CompletedAt.
func (s *Store) SaveTaskState(ctx context.Context, task *models.PlannedTask) error {
	return s.conn(ctx).Model(&models.PlannedTask{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"status":             task.Status,
			"completed_quantity": task.CompletedQuantity,
			"completed_at":       task.CompletedAt,
		}).Error
}

// HabitCompletedElsewhere reports whether another task on the same day and
// habit is still complete.
func (s *Store) HabitCompletedElsewhere(ctx context.Context, dayID, habitID, excludeTaskID uuid.UUID) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.PlannedTask{}).
		Where("planned_day_id = ? AND habit_id = ? AND id <> ? AND status = ?",
			dayID, habitID, excludeTaskID, models.TaskComplete).
		Count(&count).Error
	return count > 0, err
}

// CountHabitCompletions counts the user's completed tasks for habitID on
// dates within [start, end].
func (s *Store) CountHabitCompletions(ctx context.Context, userID, habitID uuid.UUID, start, end string) (int, error) {
	var count int64
	err := s.conn(ctx).Model(&models.PlannedTask{}).
		Joins("JOIN planned_days ON planned_days.id = planned_tasks.planned_day_id").
		Where("planned_days.user_id = ? AND planned_tasks.habit_id = ? AND planned_tasks.status = ?",
			userID, habitID, models.TaskComplete).
		Where("planned_days.date >= ? AND planned_days.date <= ?", start, end).
		Count(&count).Error
	return int(count), err
}
