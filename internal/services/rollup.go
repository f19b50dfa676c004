package services

import (
	"context"
	"fmt"

	"github.com/arnold/habits-api/internal/completion"
	"github.com/arnold/habits-api/internal/models"
	"github.com/arnold/habits-api/internal/repository"
	"github.com/google/uuid"
)

type dayRollup struct {
	Status models.DayStatus
	Score  int
}

// rollupDay recomputes the day's status and score from its current tasks.
// The score row is always written when writeScore is set; otherwise only
// an existing score row is refreshed.
func rollupDay(ctx context.Context, tx *repository.Store, day models.PlannedDay, writeScore bool) (dayRollup, error) {
	tasks, err := tx.DayTasks(ctx, day.ID)
	if err != nil {
		return dayRollup{}, fmt.Errorf("load day tasks: %w", err)
	}

	r := dayRollup{
		Status: completion.DayStatus(tasks),
		Score:  completion.DayScore(tasks),
	}

	if r.Status != day.Status {
		if err := tx.UpdateDayStatus(ctx, day.ID, r.Status); err != nil {
			return dayRollup{}, fmt.Errorf("update day status: %w", err)
		}
	}

	if writeScore || day.Result != nil {
		if _, err := tx.UpsertDayResult(ctx, day.ID, r.Score); err != nil {
			return dayRollup{}, fmt.Errorf("upsert day result: %w", err)
		}
	}
	return r, nil
}

func nextSortOrder(tasks []models.PlannedTask) int {
	next := 0
	for _, t := range tasks {
		if t.SortOrder >= next {
			next = t.SortOrder + 1
		}
	}
	return next
}

func habitRef(id uuid.UUID) *uuid.UUID {
	return &id
}
