package services

import (
	"context"
	"errors"
	"testing"

	"github.com/arnold/habits-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTracker_HydrateScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := uuid.New()
	env.createHabit(t, user, "Hydrate", 1, everyDay...)

	// Day 1
	env.clock.setDate(t, "2026-01-05")
	day := env.dayFor(t, user, "2026-01-05")
	require.Len(t, day.Tasks, 1)
	assert.Equal(t, models.TaskIncomplete, day.Tasks[0].Status)

	res, err := env.tracker.ToggleTask(ctx, user, day.Tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskComplete, res.Status)
	assert.Equal(t, models.DayComplete, res.DayStatus)
	assert.Equal(t, 100, res.Score)
	require.NotNil(t, res.Streak)
	assert.Equal(t, 1, res.Streak.CurrentStreak)
	assert.Equal(t, 1, res.Streak.LongestStreak)

	// Day 2
	env.clock.setDate(t, "2026-01-06")
	day = env.dayFor(t, user, "2026-01-06")
	res, err = env.tracker.ToggleTask(ctx, user, day.Tasks[0].ID)
	require.NoError(t, err)
	require.NotNil(t, res.Streak)
	assert.Equal(t, 2, res.Streak.CurrentStreak)
	assert.Equal(t, 2, res.Streak.LongestStreak)

	// Day 3 is skipped; day 4 restarts the streak.
	env.clock.setDate(t, "2026-01-08")
	day = env.dayFor(t, user, "2026-01-08")
	res, err = env.tracker.ToggleTask(ctx, user, day.Tasks[0].ID)
	require.NoError(t, err)
	require.NotNil(t, res.Streak)
	assert.Equal(t, 1, res.Streak.CurrentStreak)
	assert.Equal(t, 2, res.Streak.LongestStreak)
	require.NotNil(t, res.Streak.LastCompleted)
	assert.Equal(t, "2026-01-08", *res.Streak.LastCompleted)

	assert.Equal(t, int64(1), env.count(t, &models.HabitStreak{}))
}

func TestTracker_QuantityToggleSequence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := uuid.New()
	env.createHabit(t, user, "Pushups", 3, everyDay...)
	task := env.dayFor(t, user, "2026-01-05").Tasks[0]

	var quantities []int
	var statuses []models.TaskStatus
	for i := 0; i < 3; i++ {
		res, err := env.tracker.ToggleTask(ctx, user, task.ID)
		require.NoError(t, err)
		quantities = append(quantities, res.CompletedQuantity)
		statuses = append(statuses, res.Status)
	}
	assert.Equal(t, []int{1, 2, 3}, quantities)
	assert.Equal(t, []models.TaskStatus{models.TaskIncomplete, models.TaskIncomplete, models.TaskComplete}, statuses)

	res, err := env.tracker.ToggleTask(ctx, user, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskIncomplete, res.Status)
	assert.Equal(t, 0, res.CompletedQuantity)
	assert.Equal(t, models.DayIncomplete, res.DayStatus)
	assert.Equal(t, 0, res.Score)

	stored := env.dayFor(t, user, "2026-01-05").Tasks[0]
	assert.Nil(t, stored.CompletedAt)
	assert.Equal(t, 0, stored.CompletedQuantity)
}

func TestTracker_PartialProgressScore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := uuid.New()
	env.createHabit(t, user, "Glasses", 4, everyDay...)
	task := env.dayFor(t, user, "2026-01-05").Tasks[0]

	res, err := env.tracker.SetTaskQuantity(ctx, user, task.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, models.TaskIncomplete, res.Status)
	assert.Equal(t, models.DayIncomplete, res.DayStatus)
	assert.Equal(t, 50, res.Score)
	assert.Nil(t, res.Streak)

	day := env.dayFor(t, user, "2026-01-05")
	require.NotNil(t, day.Result)
	assert.Equal(t, 50, day.Result.Score)
}

func TestTracker_SetQuantityClampsAndCompletes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := uuid.New()
	env.createHabit(t, user, "Pages", 10, everyDay...)
	task := env.dayFor(t, user, "2026-01-05").Tasks[0]

	res, err := env.tracker.SetTaskQuantity(ctx, user, task.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, models.TaskComplete, res.Status)
	assert.Equal(t, 10, res.CompletedQuantity)
	require.NotNil(t, res.Streak)
	assert.Equal(t, 1, res.Streak.CurrentStreak)

	// Setting the same amount again is not a new completion.
	res, err = env.tracker.SetTaskQuantity(ctx, user, task.ID, 10)
	require.NoError(t, err)
	assert.Nil(t, res.Streak)

	res, err = env.tracker.SetTaskQuantity(ctx, user, task.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, models.TaskIncomplete, res.Status)
	assert.Equal(t, 0, res.CompletedQuantity)
	require.NotNil(t, res.Streak)
	assert.Equal(t, 0, res.Streak.CurrentStreak)
	assert.Equal(t, 1, res.Streak.LongestStreak)
	assert.Nil(t, res.Streak.LastCompleted)
}

func TestTracker_UncompleteMostRecentDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := uuid.New()
	env.createHabit(t, user, "Walk", 1, everyDay...)

	days, err := env.planner.GetPlannedDays(ctx, user, "2026-01-05", "2026-01-06")
	require.NoError(t, err)
	require.Len(t, days, 2)

	_, err = env.tracker.ToggleTask(ctx, user, days[0].Tasks[0].ID)
	require.NoError(t, err)
	_, err = env.tracker.ToggleTask(ctx, user, days[1].Tasks[0].ID)
	require.NoError(t, err)

	res, err := env.tracker.ToggleTask(ctx, user, days[1].Tasks[0].ID)
	require.NoError(t, err)
	require.NotNil(t, res.Streak)
	assert.Equal(t, 1, res.Streak.CurrentStreak)
	assert.Equal(t, 2, res.Streak.LongestStreak)
	require.NotNil(t, res.Streak.LastCompleted)
	assert.Equal(t, "2026-01-05", *res.Streak.LastCompleted)

	// Withdrawing an older completion leaves the streak alone.
	_, err = env.tracker.ToggleTask(ctx, user, days[1].Tasks[0].ID)
	require.NoError(t, err)
	res, err = env.tracker.ToggleTask(ctx, user, days[0].Tasks[0].ID)
	require.NoError(t, err)
	require.NotNil(t, res.Streak)
	assert.Equal(t, 2, res.Streak.CurrentStreak)
	assert.Equal(t, "2026-01-06", *res.Streak.LastCompleted)
}

func TestTracker_OtherUsersTaskIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, intruder := uuid.New(), uuid.New()
	env.createHabit(t, owner, "Private", 1, everyDay...)
	task := env.dayFor(t, owner, "2026-01-05").Tasks[0]

	_, err := env.tracker.ToggleTask(ctx, intruder, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.tracker.SetTaskQuantity(ctx, intruder, task.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.tracker.ToggleTask(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	stored := env.dayFor(t, owner, "2026-01-05").Tasks[0]
	assert.Equal(t, models.TaskIncomplete, stored.Status)
}

func TestTracker_HardModeBlocksOtherDates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := uuid.New()
	env.createHabit(t, user, "Meditate", 1, everyDay...)

	hard := true
	_, err := env.profiles.Update(ctx, user, "", models.UpdateProfileRequest{HardMode: &hard})
	require.NoError(t, err)

	env.clock.setDate(t, "2026-01-15")
	past := env.dayFor(t, user, "2026-01-10")
	today := env.dayFor(t, user, "2026-01-15")

	_, err = env.tracker.ToggleTask(ctx, user, past.Tasks[0].ID)
	assert.ErrorIs(t, err, ErrBlocked)
	_, err = env.tracker.SetTaskQuantity(ctx, user, past.Tasks[0].ID, 1)
	assert.ErrorIs(t, err, ErrBlocked)

	past = env.dayFor(t, user, "2026-01-10")
	assert.Equal(t, models.TaskIncomplete, past.Tasks[0].Status)
	assert.Nil(t, past.Result)
	assert.Equal(t, int64(0), env.count(t, &models.HabitStreak{}))

	res, err := env.tracker.ToggleTask(ctx, user, today.Tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskComplete, res.Status)
}

func TestTracker_HardModeOffAllowsPastDates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := uuid.New()
	env.createHabit(t, user, "Journal", 1, everyDay...)

	env.clock.setDate(t, "2026-01-15")
	past := env.dayFor(t, user, "2026-01-10")

	res, err := env.tracker.ToggleTask(ctx, user, past.Tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskComplete, res.Status)
}

func TestTracker_SkippedTaskCountsAsResolved(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := uuid.New()
	env.createHabit(t, user, "One", 1, everyDay...)
	env.createHabit(t, user, "Two", 1, everyDay...)
	day := env.dayFor(t, user, "2026-01-05")
	require.Len(t, day.Tasks, 2)

	require.NoError(t, env.db.Model(&models.PlannedTask{}).
		Where("id = ?", day.Tasks[1].ID).
		Update("status", models.TaskSkipped).Error)

	res, err := env.tracker.ToggleTask(ctx, user, day.Tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.DayComplete, res.DayStatus)
	assert.Equal(t, 50, res.Score)
}

func TestTracker_FailedStreakWriteRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := uuid.New()
	env.createHabit(t, user, "Hydrate", 1, everyDay...)
	day := env.dayFor(t, user, "2026-01-05")
	require.Len(t, day.Tasks, 1)

	errStreakWrite := errors.New("streak write failed")
	err := env.db.Callback().Create().Before("gorm:create").Register("test:fail_streak_writes", func(tx *gorm.DB) {
		if tx.Statement.Table == "habit_streaks" {
			tx.AddError(errStreakWrite)
		}
	})
	require.NoError(t, err)

	_, err = env.tracker.ToggleTask(ctx, user, day.Tasks[0].ID)
	require.ErrorIs(t, err, errStreakWrite)

	var task models.PlannedTask
	require.NoError(t, env.db.First(&task, "id = ?", day.Tasks[0].ID).Error)
	assert.Equal(t, models.TaskIncomplete, task.Status)
	assert.Equal(t, 0, task.CompletedQuantity)
	assert.Nil(t, task.CompletedAt)

	var stored models.PlannedDay
	require.NoError(t, env.db.First(&stored, "id = ?", day.ID).Error)
	assert.Equal(t, models.DayIncomplete, stored.Status)
	assert.Equal(t, int64(0), env.count(t, &models.DayResult{}))
	assert.Equal(t, int64(0), env.count(t, &models.HabitStreak{}))
}
