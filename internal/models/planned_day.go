package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DayStatus string

const (
	DayIncomplete DayStatus = "incomplete"
	DayPartial    DayStatus = "partial"
	DayComplete   DayStatus = "complete"
)

// PlannedDay is one user's materialized calendar date. Status is derived
// from its tasks and only written by the day rollup.
type PlannedDay struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID     `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_user_date,priority:1"`
	Date      string        `json:"date" gorm:"type:varchar(10);not null;uniqueIndex:idx_user_date,priority:2"`
	Status    DayStatus     `json:"status" gorm:"type:varchar(16);not null;default:'incomplete'"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Tasks     []PlannedTask `json:"tasks" gorm:"foreignKey:PlannedDayID"`
	Result    *DayResult    `json:"result,omitempty" gorm:"foreignKey:PlannedDayID"`
}

func (d *PlannedDay) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = DayIncomplete
	}
	return nil
}

// DayResult holds the 0-100 score for a planned day.
type DayResult struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	PlannedDayID uuid.UUID `json:"plannedDayId" gorm:"type:uuid;not null;uniqueIndex"`
	Score        int       `json:"score" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (r *DayResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
