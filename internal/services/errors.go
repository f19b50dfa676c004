package services

import (
	"errors"
	"fmt"

	"github.com/arnold/habits-api/internal/dateutil"
	"github.com/arnold/habits-api/internal/repository"
)

var (
	// ErrNotFound covers both missing rows and rows owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrBlocked is returned when hard mode restricts a mutation to today.
	ErrBlocked         = errors.New("hard mode only allows changes to today's tasks")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidRange    = errors.New("invalid date range")
	ErrInvalidInput    = errors.New("invalid input")
	ErrChallengeClosed = errors.New("challenge is not open for joining")
)

// mapStoreErr converts repository sentinels into service sentinels.
func mapStoreErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func validateDate(date string) error {
	if !dateutil.Valid(date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}
