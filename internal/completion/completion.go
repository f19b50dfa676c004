// Package completion holds the task completion state machine and the
// day-level rollups derived from a day's tasks. Everything here is pure.
package completion

import (
	"math"

	"github.com/arnold/habits-api/internal/models"
)

// Result is the next state of a task after a mutation.
type Result struct {
	Status            models.TaskStatus
	CompletedQuantity int
	// IsCompleting is true only when this mutation moved the task into complete.
	IsCompleting bool
}

// Toggle advances a task by one unit, or resets it when it is already complete.
func Toggle(task models.PlannedTask) Result {
	if task.Status == models.TaskComplete {
		return Result{Status: models.TaskIncomplete, CompletedQuantity: 0}
	}

	target := task.Target()
	next := task.CompletedQuantity + 1
	if next >= target {
		return Result{Status: models.TaskComplete, CompletedQuantity: next, IsCompleting: true}
	}
	return Result{Status: models.TaskIncomplete, CompletedQuantity: next}
}

// SetQuantity sets the completed amount directly, clamped into [0, target].
func SetQuantity(task models.PlannedTask, quantity int) Result {
	target := task.Target()
	if quantity < 0 {
		quantity = 0
	}
	if quantity > target {
		quantity = target
	}

	if quantity >= target {
		return Result{
			Status:            models.TaskComplete,
			CompletedQuantity: quantity,
			IsCompleting:      task.Status != models.TaskComplete,
		}
	}
	return Result{Status: models.TaskIncomplete, CompletedQuantity: quantity}
}

// DayStatus rolls task states up to the day. Complete and skipped tasks
// both count as resolved.
func DayStatus(tasks []models.PlannedTask) models.DayStatus {
	if len(tasks) == 0 {
		return models.DayIncomplete
	}

	resolved := 0
	for _, t := range tasks {
		if t.Status == models.TaskComplete || t.Status == models.TaskSkipped {
			resolved++
		}
	}

	switch {
	case resolved == 0:
		return models.DayIncomplete
	case resolved == len(tasks):
		return models.DayComplete
	default:
		return models.DayPartial
	}
}

// DayScore is the rounded mean completion fraction of the tasks, 0..100.
// Skipped tasks weigh nothing.
func DayScore(tasks []models.PlannedTask) int {
	if len(tasks) == 0 {
		return 0
	}

	total := 0.0
	for _, t := range tasks {
		total += weight(t)
	}
	return int(math.Round(100 * total / float64(len(tasks))))
}

func weight(t models.PlannedTask) float64 {
	switch t.Status {
	case models.TaskComplete:
		return 1
	case models.TaskSkipped:
		return 0
	}
	w := float64(t.CompletedQuantity) / float64(t.Target())
	if w > 1 {
		return 1
	}
	if w < 0 {
		return 0
	}
	return w
}

// IsHardModeBlocked reports whether a mutation on taskDate must be refused
// because hard mode only allows changes to today's tasks.
func IsHardModeBlocked(hardMode bool, taskDate, today string) bool {
	return hardMode && taskDate != today
}
