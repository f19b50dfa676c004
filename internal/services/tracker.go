package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/arnold/habits-api/internal/completion"
	"github.com/arnold/habits-api/internal/logger"
	"github.com/arnold/habits-api/internal/models"
	"github.com/arnold/habits-api/internal/repository"
	"github.com/arnold/habits-api/internal/streak"
	"github.com/google/uuid"
)

// MutationResult is what a caller sees after a task mutation commits.
type MutationResult struct {
	TaskID            uuid.UUID           `json:"taskId"`
	Status            models.TaskStatus   `json:"status"`
	DayStatus         models.DayStatus    `json:"dayStatus"`
	CompletedQuantity int                 `json:"completedQuantity"`
	Score             int                 `json:"score"`
	Streak            *models.HabitStreak `json:"streak,omitempty"`
}

// Tracker applies task mutations. Each call updates the task, the day's
// status and score, and the habit streak in one transaction.
type Tracker struct {
	store *repository.Store
	clock Clock
}

func NewTracker(store *repository.Store, clock Clock) *Tracker {
	return &Tracker{store: store, clock: clock}
}

// ToggleTask advances the task by one unit, or resets it if already complete.
func (t *Tracker) ToggleTask(ctx context.Context, userID, taskID uuid.UUID) (MutationResult, error) {
	return t.mutate(ctx, userID, taskID, completion.Toggle)
}

// SetTaskQuantity sets the completed amount. Out of range values are clamped.
func (t *Tracker) SetTaskQuantity(ctx context.Context, userID, taskID uuid.UUID, quantity int) (MutationResult, error) {
	return t.mutate(ctx, userID, taskID, func(task models.PlannedTask) completion.Result {
		return completion.SetQuantity(task, quantity)
	})
}

func (t *Tracker) mutate(ctx context.Context, userID, taskID uuid.UUID, next func(models.PlannedTask) completion.Result) (MutationResult, error) {
	now := t.clock.now()
	today := t.clock.today()

	var out MutationResult
	err := t.store.Transaction(ctx, func(tx *repository.Store) error {
		task, day, err := tx.GetTaskForUser(ctx, userID, taskID)
		if err != nil {
			return err
		}

		hardMode, err := hardModeEnabled(ctx, tx, userID)
		if err != nil {
			return err
		}
		if completion.IsHardModeBlocked(hardMode, day.Date, today) {
			return ErrBlocked
		}

		wasComplete := task.Status == models.TaskComplete
		r := next(task)

		task.Status = r.Status
		task.CompletedQuantity = r.CompletedQuantity
		switch {
		case r.Status != models.TaskComplete:
			task.CompletedAt = nil
		case !wasComplete || task.CompletedAt == nil:
			task.CompletedAt = &now
		}
		if err := tx.SaveTaskState(ctx, &task); err != nil {
			return fmt.Errorf("save task: %w", err)
		}

		rollup, err := rollupDay(ctx, tx, day, true)
		if err != nil {
			return err
		}

		out = MutationResult{
			TaskID:            task.ID,
			Status:            task.Status,
			DayStatus:         rollup.Status,
			CompletedQuantity: task.CompletedQuantity,
			Score:             rollup.Score,
		}

		if task.HabitID == nil {
			return nil
		}
		uncompleting := wasComplete && r.Status != models.TaskComplete
		if !r.IsCompleting && !uncompleting {
			return nil
		}
		s, err := t.updateStreak(ctx, tx, userID, task, day.Date, r.IsCompleting)
		if err != nil {
			return err
		}
		out.Streak = s
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrBlocked) {
			err = mapStoreErr(err)
		}
		return MutationResult{}, err
	}

	logger.Debug("task mutated", "user", userID, "task", taskID, "status", out.Status, "dayStatus", out.DayStatus)
	return out, nil
}

// updateStreak applies a completion or un-completion to the habit streak.
// It returns nil when there was no streak to withdraw from.
func (t *Tracker) updateStreak(ctx context.Context, tx *repository.Store, userID uuid.UUID, task models.PlannedTask, date string, completing bool) (*models.HabitStreak, error) {
	habitID := *task.HabitID

	existing, err := tx.GetStreak(ctx, userID, habitID)
	if err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	}

	var next streak.State
	if completing {
		next, err = streak.OnComplete(toState(existing), date)
	} else {
		if existing == nil {
			return nil, nil
		}
		var elsewhere bool
		elsewhere, err = tx.HabitCompletedElsewhere(ctx, task.PlannedDayID, habitID, task.ID)
		if err != nil {
			return nil, fmt.Errorf("check sibling tasks: %w", err)
		}
		next, err = streak.OnUncomplete(toState(existing), date, elsewhere)
	}
	if err != nil {
		return nil, err
	}

	row := &models.HabitStreak{
		UserID:        userID,
		HabitID:       habitID,
		CurrentStreak: next.Current,
		LongestStreak: next.Longest,
		LastCompleted: next.LastCompleted,
	}
	if err := tx.UpsertStreak(ctx, row); err != nil {
		return nil, fmt.Errorf("save streak: %w", err)
	}
	return tx.GetStreak(ctx, userID, habitID)
}

func hardModeEnabled(ctx context.Context, tx *repository.Store, userID uuid.UUID) (bool, error) {
	user, err := tx.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load user: %w", err)
	}
	return user.HardMode, nil
}

func toState(s *models.HabitStreak) *streak.State {
	if s == nil {
		return nil
	}
	return &streak.State{
		Current:       s.CurrentStreak,
		Longest:       s.LongestStreak,
		LastCompleted: s.LastCompleted,
	}
}
