package handlers

import (
	"github.com/arnold/habits-api/internal/middleware"
	"github.com/arnold/habits-api/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetChallenges(c *fiber.Ctx) error {
	challenges, err := h.Challenges.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "Failed to fetch challenges")
	}
	return c.JSON(challenges)
}

func (h *Handler) CreateChallenge(c *fiber.Ctx) error {
	var req models.CreateChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	challenge, err := h.Challenges.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Failed to create challenge")
	}
	return c.Status(fiber.StatusCreated).JSON(challenge)
}

func (h *Handler) JoinChallenge(c *fiber.Ctx) error {
	challengeID, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, "challenge")
	}

	participant, err := h.Challenges.Join(c.UserContext(), middleware.GetUserID(c), challengeID)
	if err != nil {
		return respondError(c, err, "Failed to join challenge")
	}
	return c.JSON(participant)
}

func (h *Handler) GetChallengeProgress(c *fiber.Ctx) error {
	challengeID, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, "challenge")
	}

	progress, err := h.Challenges.Progress(c.UserContext(), middleware.GetUserID(c), challengeID)
	if err != nil {
		return respondError(c, err, "Failed to load challenge progress")
	}
	return c.JSON(progress)
}
