package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/arnold/habits-api/internal/dateutil"
	"github.com/arnold/habits-api/internal/logger"
	"github.com/arnold/habits-api/internal/models"
	"github.com/arnold/habits-api/internal/repository"
	"github.com/google/uuid"
)

// Planner materializes planned days and their tasks from weekly habit
// schedules. Days with nothing scheduled are not stored.
type Planner struct {
	store        *repository.Store
	maxRangeDays int
}

func NewPlanner(store *repository.Store, maxRangeDays int) *Planner {
	return &Planner{store: store, maxRangeDays: maxRangeDays}
}

// GetPlannedDays returns the user's days in [start, end], creating missing
// days and backfilling tasks for habits scheduled after a day was first
// stored. Repeating the call over a fully materialized range writes nothing.
func (p *Planner) GetPlannedDays(ctx context.Context, userID uuid.UUID, start, end string) ([]models.PlannedDay, error) {
	dates, err := p.dateRange(start, end)
	if err != nil {
		return nil, err
	}

	habits, err := p.store.ScheduledHabits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}
	byWeekday := habitsByWeekday(habits)

	existing, err := p.store.ListDays(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load planned days: %w", err)
	}
	byDate := make(map[string]models.PlannedDay, len(existing))
	for _, d := range existing {
		byDate[d.Date] = d
	}

	days := make([]models.PlannedDay, 0, len(dates))
	for _, date := range dates {
		weekday, err := dateutil.Weekday(date)
		if err != nil {
			return nil, err
		}
		scheduled := byWeekday[weekday]

		day, ok := byDate[date]
		switch {
		case ok:
			missing := missingHabits(day.Tasks, scheduled)
			if len(missing) > 0 {
				if day, err = p.materialize(ctx, userID, date, missing); err != nil {
					return nil, err
				}
			}
		case len(scheduled) > 0:
			if day, err = p.materialize(ctx, userID, date, scheduled); err != nil {
				return nil, err
			}
		default:
			continue
		}
		days = append(days, day)
	}
	return days, nil
}

// materialize get-or-creates the day and adds a task for each habit that
// does not have one yet, then returns the reloaded day.
func (p *Planner) materialize(ctx context.Context, userID uuid.UUID, date string, habits []models.Habit) (models.PlannedDay, error) {
	err := p.store.Transaction(ctx, func(tx *repository.Store) error {
		day, created, err := tx.GetOrCreateDay(ctx, userID, date)
		if err != nil {
			return fmt.Errorf("get or create day %s: %w", date, err)
		}

		current, err := tx.DayTasks(ctx, day.ID)
		if err != nil {
			return fmt.Errorf("load day tasks: %w", err)
		}
		sortOrder := nextSortOrder(current)

		added := 0
		for _, h := range missingHabits(current, habits) {
			task := models.PlannedTask{
				PlannedDayID: day.ID,
				HabitID:      habitRef(h.ID),
				Title:        h.Title,
				Description:  h.Description,
				Quantity:     models.NormalizeQuantity(h.Quantity),
				Unit:         h.Unit,
				Status:       models.TaskIncomplete,
				SortOrder:    sortOrder,
			}
			inserted, err := tx.CreateTaskIfAbsent(ctx, &task)
			if err != nil {
				return fmt.Errorf("create task for habit %s: %w", h.ID, err)
			}
			if inserted {
				sortOrder++
				added++
			}
		}

		if added > 0 && !created {
			stored, err := tx.GetDay(ctx, userID, date)
			if err != nil {
				return err
			}
			if _, err := rollupDay(ctx, tx, stored, false); err != nil {
				return err
			}
		}

		logger.Debug("materialized day", "user", userID, "date", date, "created", created, "tasks", added)
		return nil
	})
	if err != nil {
		return models.PlannedDay{}, err
	}

	day, err := p.store.GetDay(ctx, userID, date)
	if err != nil {
		return models.PlannedDay{}, mapStoreErr(err)
	}
	return day, nil
}

// AddTask appends an ad hoc task, not linked to any habit, to the given date.
func (p *Planner) AddTask(ctx context.Context, userID uuid.UUID, date string, req models.CreateTaskRequest) (models.PlannedTask, error) {
	if err := validateDate(date); err != nil {
		return models.PlannedTask{}, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.PlannedTask{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	quantity := models.DefaultQuantity
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return models.PlannedTask{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
		}
		quantity = *req.Quantity
	}

	var task models.PlannedTask
	err := p.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, _, err := tx.GetOrCreateDay(ctx, userID, date); err != nil {
			return fmt.Errorf("get or create day %s: %w", date, err)
		}
		day, err := tx.GetDay(ctx, userID, date)
		if err != nil {
			return err
		}

		task = models.PlannedTask{
			PlannedDayID: day.ID,
			Title:        title,
			Description:  req.Description,
			Quantity:     quantity,
			Unit:         req.Unit,
			Status:       models.TaskIncomplete,
			SortOrder:    nextSortOrder(day.Tasks),
		}
		if _, err := tx.CreateTaskIfAbsent(ctx, &task); err != nil {
			return fmt.Errorf("create task: %w", err)
		}

		_, err = rollupDay(ctx, tx, day, false)
		return err
	})
	if err != nil {
		return models.PlannedTask{}, mapStoreErr(err)
	}

	logger.Info("added ad hoc task", "user", userID, "date", date, "task", task.ID)
	return task, nil
}

func (p *Planner) dateRange(start, end string) ([]string, error) {
	if err := validateDate(start); err != nil {
		return nil, err
	}
	if err := validateDate(end); err != nil {
		return nil, err
	}
	if end < start {
		return nil, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, start, end)
	}

	n, err := dateutil.InclusiveDays(start, end)
	if err != nil {
		return nil, err
	}
	if p.maxRangeDays > 0 && n > p.maxRangeDays {
		return nil, fmt.Errorf("%w: %d days exceeds the limit of %d", ErrInvalidRange, n, p.maxRangeDays)
	}
	return dateutil.Range(start, end)
}

// habitsByWeekday indexes habits by each weekday they have an active row for.
func habitsByWeekday(habits []models.Habit) [7][]models.Habit {
	var index [7][]models.Habit
	for _, h := range habits {
		for _, s := range h.Schedules {
			if s.IsActive && s.DayOfWeek >= 0 && s.DayOfWeek < 7 {
				index[s.DayOfWeek] = append(index[s.DayOfWeek], h)
			}
		}
	}
	return index
}

// missingHabits returns the habits with no task in tasks, matched by habit id.
func missingHabits(tasks []models.PlannedTask, habits []models.Habit) []models.Habit {
	have := make(map[uuid.UUID]bool, len(tasks))
	for _, t := range tasks {
		if t.HabitID != nil {
			have[*t.HabitID] = true
		}
	}

	var missing []models.Habit
	for _, h := range habits {
		if !have[h.ID] {
			missing = append(missing, h)
		}
	}
	return missing
}
