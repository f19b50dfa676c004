package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the profile row for an authenticated caller. Rows are created
// lazily from the token's user id.
type User struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	HardMode    bool      `json:"hardMode" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	HardMode    *bool   `json:"hardMode"`
}
