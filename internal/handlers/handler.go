package handlers

import (
	"errors"

	"github.com/arnold/habits-api/internal/logger"
	"github.com/arnold/habits-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handler holds the services the HTTP routes call into.
type Handler struct {
	Planner    *services.Planner
	Tracker    *services.Tracker
	Habits     *services.Habits
	Challenges *services.Challenges
	Profiles   *services.Profiles
}

// respondError maps service errors onto status codes. Unknown errors are
// logged and reported with the fallback message only.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	case errors.Is(err, services.ErrBlocked):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "Hard mode is on: only today's tasks can be changed",
			"blocked": true,
		})
	case errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidRange),
		errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrChallengeClosed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		logger.Error(fallback, "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fallback,
		})
	}
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(param))
	return id, err == nil
}

func invalidID(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid " + what + " ID",
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}
