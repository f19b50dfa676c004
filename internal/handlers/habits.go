package handlers

import (
	"github.com/arnold/habits-api/internal/middleware"
	"github.com/arnold/habits-api/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetHabits(c *fiber.Ctx) error {
	habits, err := h.Habits.List(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err, "Failed to fetch habits")
	}
	return c.JSON(habits)
}

func (h *Handler) CreateHabit(c *fiber.Ctx) error {
	var req models.CreateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	habit, err := h.Habits.Create(c.UserContext(), middleware.GetUserID(c), req)
	if err != nil {
		return respondError(c, err, "Failed to create habit")
	}
	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (h *Handler) UpdateHabit(c *fiber.Ctx) error {
	habitID, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, "habit")
	}

	var req models.UpdateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	habit, err := h.Habits.Update(c.UserContext(), middleware.GetUserID(c), habitID, req)
	if err != nil {
		return respondError(c, err, "Failed to update habit")
	}
	return c.JSON(habit)
}

func (h *Handler) SetHabitSchedule(c *fiber.Ctx) error {
	habitID, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, "habit")
	}

	var req models.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	habit, err := h.Habits.SetSchedule(c.UserContext(), middleware.GetUserID(c), habitID, req.DaysOfWeek)
	if err != nil {
		return respondError(c, err, "Failed to update schedule")
	}
	return c.JSON(habit)
}

func (h *Handler) ArchiveHabit(c *fiber.Ctx) error {
	habitID, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, "habit")
	}

	req := models.ArchiveHabitRequest{Archived: true}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
	}

	habit, err := h.Habits.Archive(c.UserContext(), middleware.GetUserID(c), habitID, req.Archived)
	if err != nil {
		return respondError(c, err, "Failed to archive habit")
	}
	return c.JSON(habit)
}
