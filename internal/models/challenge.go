package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParticipantStatus string

const (
	ParticipantActive    ParticipantStatus = "active"
	ParticipantCompleted ParticipantStatus = "completed"
	ParticipantFailed    ParticipantStatus = "failed"
)

// Challenge is a time-boxed target; StartDate and EndDate are inclusive.
type Challenge struct {
	ID                  uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title               string    `json:"title" gorm:"not null"`
	Description         *string   `json:"description"`
	StartDate           string    `json:"startDate" gorm:"type:varchar(10);not null"`
	EndDate             string    `json:"endDate" gorm:"type:varchar(10);not null"`
	RequiredDaysPerWeek int       `json:"requiredDaysPerWeek" gorm:"not null"`
	Quantity            *int      `json:"quantity"`
	Unit                *string   `json:"unit"`
	IsActive            bool      `json:"isActive" gorm:"not null"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type ChallengeParticipant struct {
	ID          uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	ChallengeID uuid.UUID         `json:"challengeId" gorm:"type:uuid;not null;uniqueIndex:idx_challenge_user,priority:1"`
	UserID      uuid.UUID         `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_challenge_user,priority:2"`
	HabitID     uuid.UUID         `json:"habitId" gorm:"type:uuid;not null"`
	Status      ParticipantStatus `json:"status" gorm:"type:varchar(16);not null;default:'active'"`
	JoinedAt    time.Time         `json:"joinedAt"`
	CompletedAt *time.Time        `json:"completedAt"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (p *ChallengeParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ParticipantActive
	}
	return nil
}

type CreateChallengeRequest struct {
	Title               string  `json:"title"`
	Description         *string `json:"description"`
	StartDate           string  `json:"startDate"`
	EndDate             string  `json:"endDate"`
	RequiredDaysPerWeek int     `json:"requiredDaysPerWeek"`
	Quantity            *int    `json:"quantity"`
	Unit                *string `json:"unit"`
}
