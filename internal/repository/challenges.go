package repository

import (
	"context"

	"github.com/arnold/habits-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateChallenge(ctx context.Context, c *models.Challenge) error {
	return s.conn(ctx).Create(c).Error
}

func (s *Store) GetChallenge(ctx context.Context, id uuid.UUID) (models.Challenge, error) {
	var c models.Challenge
	if err := s.conn(ctx).First(&c, "id = ?", id).Error; err != nil {
		return models.Challenge{}, translate(err)
	}
	return c, nil
}

func (s *Store) ListActiveChallenges(ctx context.Context) ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := s.conn(ctx).
		Where("is_active = ?", true).
		Order("start_date ASC, created_at ASC").
		Find(&challenges).Error
	return challenges, err
}

func (s *Store) GetParticipant(ctx context.Context, challengeID, userID uuid.UUID) (models.ChallengeParticipant, error) {
	var p models.ChallengeParticipant
	err := s.forUpdate(s.conn(ctx)).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		First(&p).Error
	if err != nil {
		return models.ChallengeParticipant{}, translate(err)
	}
	return p, nil
}

// CreateParticipantIfAbsent inserts p unless (challenge, user) already exists.
func (s *Store) CreateParticipantIfAbsent(ctx context.Context, p *models.ChallengeParticipant) (bool, error) {
	res := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "challenge_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) UpdateParticipantStatus(ctx context.Context, p *models.ChallengeParticipant) error {
	return s.conn(ctx).Model(&models.ChallengeParticipant{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"status":       p.Status,
			"completed_at": p.CompletedAt,
		}).Error
}
