package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/arnold/habits-api/internal/logger"
	"github.com/arnold/habits-api/internal/models"
	"github.com/arnold/habits-api/internal/repository"
	"github.com/google/uuid"
)

// Habits manages habit definitions and their weekly schedules. Edits never
// touch tasks that were already materialized.
type Habits struct {
	store *repository.Store
}

func NewHabits(store *repository.Store) *Habits {
	return &Habits{store: store}
}

func (h *Habits) List(ctx context.Context, userID uuid.UUID) ([]models.Habit, error) {
	return h.store.ListHabits(ctx, userID)
}

func (h *Habits) Get(ctx context.Context, userID, habitID uuid.UUID) (models.Habit, error) {
	habit, err := h.store.GetHabit(ctx, userID, habitID)
	return habit, mapStoreErr(err)
}

func (h *Habits) Create(ctx context.Context, userID uuid.UUID, req models.CreateHabitRequest) (models.Habit, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Habit{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	quantity, err := quantityOrDefault(req.Quantity)
	if err != nil {
		return models.Habit{}, err
	}
	days, err := normalizeWeekdays(req.DaysOfWeek)
	if err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		Quantity:    quantity,
		Unit:        req.Unit,
	}
	for _, d := range days {
		habit.Schedules = append(habit.Schedules, models.ScheduledHabit{DayOfWeek: d, IsActive: true})
	}

	if err := h.store.CreateHabit(ctx, &habit); err != nil {
		return models.Habit{}, fmt.Errorf("create habit: %w", err)
	}
	logger.Info("habit created", "user", userID, "habit", habit.ID, "days", days)
	return h.Get(ctx, userID, habit.ID)
}

func (h *Habits) Update(ctx context.Context, userID, habitID uuid.UUID, req models.UpdateHabitRequest) (models.Habit, error) {
	habit, err := h.store.GetHabit(ctx, userID, habitID)
	if err != nil {
		return models.Habit{}, mapStoreErr(err)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return models.Habit{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		habit.Title = title
	}
	if req.Description != nil {
		habit.Description = req.Description
	}
	if req.Color != nil {
		habit.Color = req.Color
	}
	if req.Icon != nil {
		habit.Icon = req.Icon
	}
	if req.Unit != nil {
		habit.Unit = req.Unit
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return models.Habit{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
		}
		habit.Quantity = *req.Quantity
	}

	if err := h.store.SaveHabit(ctx, &habit); err != nil {
		return models.Habit{}, fmt.Errorf("update habit: %w", err)
	}
	return h.Get(ctx, userID, habitID)
}

// SetSchedule replaces the habit's weekly pattern. Previously active days
// are deactivated, not deleted.
func (h *Habits) SetSchedule(ctx context.Context, userID, habitID uuid.UUID, daysOfWeek []int) (models.Habit, error) {
	days, err := normalizeWeekdays(daysOfWeek)
	if err != nil {
		return models.Habit{}, err
	}

	err = h.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.GetHabit(ctx, userID, habitID); err != nil {
			return err
		}
		return tx.ReplaceSchedule(ctx, habitID, days)
	})
	if err != nil {
		return models.Habit{}, mapStoreErr(err)
	}

	logger.Info("habit schedule replaced", "user", userID, "habit", habitID, "days", days)
	return h.Get(ctx, userID, habitID)
}

// Archive hides the habit from future materialization without removing it.
func (h *Habits) Archive(ctx context.Context, userID, habitID uuid.UUID, archived bool) (models.Habit, error) {
	habit, err := h.store.GetHabit(ctx, userID, habitID)
	if err != nil {
		return models.Habit{}, mapStoreErr(err)
	}
	habit.IsArchived = archived
	if err := h.store.SaveHabit(ctx, &habit); err != nil {
		return models.Habit{}, fmt.Errorf("archive habit: %w", err)
	}
	return habit, nil
}

func quantityOrDefault(q *int) (int, error) {
	if q == nil {
		return models.DefaultQuantity, nil
	}
	if *q < 1 {
		return 0, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	return *q, nil
}

// normalizeWeekdays validates 0..6, drops duplicates and sorts.
func normalizeWeekdays(days []int) ([]int, error) {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("%w: day of week %d is out of range", ErrInvalidInput, d)
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out, nil
}
