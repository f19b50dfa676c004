package handlers

import (
	"github.com/arnold/habits-api/internal/middleware"
	"github.com/arnold/habits-api/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetMe(c *fiber.Ctx) error {
	user, err := h.Profiles.Get(c.UserContext(), middleware.GetUserID(c), middleware.GetEmail(c))
	if err != nil {
		return respondError(c, err, "Failed to load profile")
	}
	return c.JSON(user)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.Profiles.Update(c.UserContext(), middleware.GetUserID(c), middleware.GetEmail(c), req)
	if err != nil {
		return respondError(c, err, "Failed to update profile")
	}
	return c.JSON(user)
}
