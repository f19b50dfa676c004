package services

import (
	"context"
	"fmt"

	"github.com/arnold/habits-api/internal/models"
	"github.com/arnold/habits-api/internal/repository"
	"github.com/google/uuid"
)

// Profiles exposes the caller's profile, chiefly the hard mode flag.
type Profiles struct {
	store *repository.Store
}

func NewProfiles(store *repository.Store) *Profiles {
	return &Profiles{store: store}
}

func (p *Profiles) Get(ctx context.Context, userID uuid.UUID, email string) (models.User, error) {
	return p.store.GetOrCreateUser(ctx, userID, email)
}

func (p *Profiles) Update(ctx context.Context, userID uuid.UUID, email string, req models.UpdateProfileRequest) (models.User, error) {
	user, err := p.store.GetOrCreateUser(ctx, userID, email)
	if err != nil {
		return models.User{}, err
	}
	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.HardMode != nil {
		user.HardMode = *req.HardMode
	}
	if err := p.store.SaveUser(ctx, &user); err != nil {
		return models.User{}, fmt.Errorf("save profile: %w", err)
	}
	return user, nil
}
