package repository

import (
	"context"

	"github.com/arnold/habits-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// GetOrCreateUser returns the profile row for id, creating a blank one on first access.
func (s *Store) GetOrCreateUser(ctx context.Context, id uuid.UUID, email string) (models.User, error) {
	user := models.User{ID: id, Email: email}
	if err := s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
		return models.User{}, err
	}

	var stored models.User
	if err := s.conn(ctx).First(&stored, "id = ?", id).Error; err != nil {
		return models.User{}, translate(err)
	}
	return stored, nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	if err := s.conn(ctx).First(&user, "id = ?", id).Error; err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	return s.conn(ctx).Save(user).Error
}
