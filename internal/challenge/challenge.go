// Package challenge evaluates progress and terminal status for time-boxed
// challenges. Dates are inclusive YYYY-MM-DD strings.
package challenge

import (
	"math"

	"github.com/arnold/habits-api/internal/dateutil"
	"github.com/arnold/habits-api/internal/models"
)

// Status is where today falls relative to a challenge's date window.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
	StatusEnded    Status = "ended"
)

type Progress struct {
	Completions int `json:"completions"`
	Required    int `json:"required"`
	Percentage  int `json:"percentage"`
}

// RequiredCompletions is requiredDaysPerWeek for every started week of the window.
func RequiredCompletions(requiredDaysPerWeek int, startDate, endDate string) (int, error) {
	days, err := dateutil.InclusiveDays(startDate, endDate)
	if err != nil {
		return 0, err
	}
	weeks := (days + 6) / 7
	return requiredDaysPerWeek * weeks, nil
}

// ComputeProgress caps the percentage at 100.
func ComputeProgress(completions, requiredDaysPerWeek int, startDate, endDate string) (Progress, error) {
	required, err := RequiredCompletions(requiredDaysPerWeek, startDate, endDate)
	if err != nil {
		return Progress{}, err
	}

	p := Progress{Completions: completions, Required: required}
	if required > 0 {
		pct := 100 * float64(completions) / float64(required)
		p.Percentage = int(math.Round(math.Min(100, pct)))
	}
	return p, nil
}

// Evaluate returns active until the window closes, then completed or failed.
func Evaluate(completions, requiredDaysPerWeek int, startDate, endDate, today string) (models.ParticipantStatus, error) {
	required, err := RequiredCompletions(requiredDaysPerWeek, startDate, endDate)
	if err != nil {
		return "", err
	}
	if today <= endDate {
		return models.ParticipantActive, nil
	}
	if completions >= required {
		return models.ParticipantCompleted, nil
	}
	return models.ParticipantFailed, nil
}

// WindowStatus places today relative to the inclusive window.
func WindowStatus(startDate, endDate, today string) Status {
	switch {
	case today < startDate:
		return StatusUpcoming
	case today > endDate:
		return StatusEnded
	default:
		return StatusActive
	}
}
