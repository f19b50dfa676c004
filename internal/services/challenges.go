package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arnold/habits-api/internal/challenge"
	"github.com/arnold/habits-api/internal/logger"
	"github.com/arnold/habits-api/internal/models"
	"github.com/arnold/habits-api/internal/repository"
	"github.com/google/uuid"
)

var errAlreadyJoined = errors.New("already joined")

type ChallengeView struct {
	models.Challenge
	Window challenge.Status `json:"window"`
}

type ChallengeProgress struct {
	Challenge   models.Challenge            `json:"challenge"`
	Participant models.ChallengeParticipant `json:"participant"`
	challenge.Progress
}

// Challenges handles joining challenges and evaluating participants.
type Challenges struct {
	store *repository.Store
	clock Clock
}

func NewChallenges(store *repository.Store, clock Clock) *Challenges {
	return &Challenges{store: store, clock: clock}
}

func (c *Challenges) Create(ctx context.Context, req models.CreateChallengeRequest) (models.Challenge, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Challenge{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := validateDate(req.StartDate); err != nil {
		return models.Challenge{}, err
	}
	if err := validateDate(req.EndDate); err != nil {
		return models.Challenge{}, err
	}
	if req.EndDate < req.StartDate {
		return models.Challenge{}, fmt.Errorf("%w: challenge ends before it starts", ErrInvalidRange)
	}
	if req.RequiredDaysPerWeek < 1 || req.RequiredDaysPerWeek > 7 {
		return models.Challenge{}, fmt.Errorf("%w: requiredDaysPerWeek must be between 1 and 7", ErrInvalidInput)
	}
	if req.Quantity != nil && *req.Quantity < 1 {
		return models.Challenge{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	ch := models.Challenge{
		Title:               title,
		Description:         req.Description,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		RequiredDaysPerWeek: req.RequiredDaysPerWeek,
		Quantity:            req.Quantity,
		Unit:                req.Unit,
		IsActive:            true,
	}
	if err := c.store.CreateChallenge(ctx, &ch); err != nil {
		return models.Challenge{}, fmt.Errorf("create challenge: %w", err)
	}
	return ch, nil
}

func (c *Challenges) List(ctx context.Context) ([]ChallengeView, error) {
	challenges, err := c.store.ListActiveChallenges(ctx)
	if err != nil {
		return nil, err
	}

	today := c.clock.today()
	views := make([]ChallengeView, 0, len(challenges))
	for _, ch := range challenges {
		views = append(views, ChallengeView{
			Challenge: ch,
			Window:    challenge.WindowStatus(ch.StartDate, ch.EndDate, today),
		})
	}
	return views, nil
}

// Join enrolls the user. The first join creates a habit linked to the
// challenge and scheduled every day; joining again returns the existing row.
func (c *Challenges) Join(ctx context.Context, userID, challengeID uuid.UUID) (models.ChallengeParticipant, error) {
	today := c.clock.today()

	var participant models.ChallengeParticipant
	err := c.store.Transaction(ctx, func(tx *repository.Store) error {
		ch, err := tx.GetChallenge(ctx, challengeID)
		if err != nil {
			return err
		}

		existing, err := tx.GetParticipant(ctx, challengeID, userID)
		if err == nil {
			participant = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if !ch.IsActive || challenge.WindowStatus(ch.StartDate, ch.EndDate, today) == challenge.StatusEnded {
			return ErrChallengeClosed
		}

		quantity := models.DefaultQuantity
		if ch.Quantity != nil {
			quantity = models.NormalizeQuantity(*ch.Quantity)
		}
		habit := models.Habit{
			UserID:      userID,
			Title:       ch.Title,
			Description: ch.Description,
			Quantity:    quantity,
			Unit:        ch.Unit,
		}
		for d := 0; d < 7; d++ {
			habit.Schedules = append(habit.Schedules, models.ScheduledHabit{DayOfWeek: d, IsActive: true})
		}
		if err := tx.CreateHabit(ctx, &habit); err != nil {
			return fmt.Errorf("create challenge habit: %w", err)
		}

		participant = models.ChallengeParticipant{
			ChallengeID: challengeID,
			UserID:      userID,
			HabitID:     habit.ID,
			Status:      models.ParticipantActive,
			JoinedAt:    c.clock.now(),
		}
		created, err := tx.CreateParticipantIfAbsent(ctx, &participant)
		if err != nil {
			return fmt.Errorf("create participant: %w", err)
		}
		if !created {
			return errAlreadyJoined
		}
		return nil
	})

	if errors.Is(err, errAlreadyJoined) {
		p, err := c.store.GetParticipant(ctx, challengeID, userID)
		return p, mapStoreErr(err)
	}
	if err != nil {
		if !errors.Is(err, ErrChallengeClosed) {
			err = mapStoreErr(err)
		}
		return models.ChallengeParticipant{}, err
	}

	logger.Info("challenge joined", "user", userID, "challenge", challengeID, "habit", participant.HabitID)
	return participant, nil
}

// Progress counts the participant's completions inside the challenge window
// and settles the participant as completed or failed once the window has
// closed. Settled participants are not re-evaluated.
func (c *Challenges) Progress(ctx context.Context, userID, challengeID uuid.UUID) (ChallengeProgress, error) {
	today := c.clock.today()

	var out ChallengeProgress
	err := c.store.Transaction(ctx, func(tx *repository.Store) error {
		ch, err := tx.GetChallenge(ctx, challengeID)
		if err != nil {
			return err
		}
		p, err := tx.GetParticipant(ctx, challengeID, userID)
		if err != nil {
			return err
		}

		completions, err := tx.CountHabitCompletions(ctx, userID, p.HabitID, ch.StartDate, ch.EndDate)
		if err != nil {
			return fmt.Errorf("count completions: %w", err)
		}
		progress, err := challenge.ComputeProgress(completions, ch.RequiredDaysPerWeek, ch.StartDate, ch.EndDate)
		if err != nil {
			return err
		}

		if p.Status == models.ParticipantActive {
			status, err := challenge.Evaluate(completions, ch.RequiredDaysPerWeek, ch.StartDate, ch.EndDate, today)
			if err != nil {
				return err
			}
			if status != models.ParticipantActive {
				p.Status = status
				if status == models.ParticipantCompleted {
					now := c.clock.now()
					p.CompletedAt = &now
				}
				if err := tx.UpdateParticipantStatus(ctx, &p); err != nil {
					return fmt.Errorf("update participant: %w", err)
				}
				logger.Info("challenge settled", "user", userID, "challenge", challengeID, "status", status, "completions", completions, "required", progress.Required)
			}
		}

		out = ChallengeProgress{Challenge: ch, Participant: p, Progress: progress}
		return nil
	})
	if err != nil {
		return ChallengeProgress{}, mapStoreErr(err)
	}
	return out, nil
}
