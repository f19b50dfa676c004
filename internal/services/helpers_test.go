package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/arnold/habits-api/internal/database"
	"github.com/arnold/habits-api/internal/models"
	"github.com/arnold/habits-api/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv bundles every service over one sqlite file.
type testEnv struct {
	db         *gorm.DB
	store      *repository.Store
	clock      *testClock
	planner    *Planner
	tracker    *Tracker
	habits     *Habits
	profiles   *Profiles
	challenges *Challenges
}

type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time { return c.current }

// setDate moves the clock to 09:00 UTC on date.
func (c *testClock) setDate(t *testing.T, date string) {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	c.current = d.Add(9 * time.Hour)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store := repository.New(db)
	clock := &testClock{}
	clock.setDate(t, "2026-01-05")

	return &testEnv{
		db:         db,
		store:      store,
		clock:      clock,
		planner:    NewPlanner(store, 92),
		tracker:    NewTracker(store, clock.Now),
		habits:     NewHabits(store),
		profiles:   NewProfiles(store),
		challenges: NewChallenges(store, clock.Now),
	}
}

func (e *testEnv) createHabit(t *testing.T, userID uuid.UUID, title string, quantity int, days ...int) models.Habit {
	t.Helper()
	h, err := e.habits.Create(context.Background(), userID, models.CreateHabitRequest{
		Title:      title,
		Quantity:   &quantity,
		DaysOfWeek: days,
	})
	require.NoError(t, err)
	return h
}

func (e *testEnv) dayFor(t *testing.T, userID uuid.UUID, date string) models.PlannedDay {
	t.Helper()
	days, err := e.planner.GetPlannedDays(context.Background(), userID, date, date)
	require.NoError(t, err)
	require.Len(t, days, 1, "expected one planned day for %s", date)
	return days[0]
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

var everyDay = []int{0, 1, 2, 3, 4, 5, 6}
