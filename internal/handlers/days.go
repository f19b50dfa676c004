package handlers

import (
	"github.com/arnold/habits-api/internal/middleware"
	"github.com/arnold/habits-api/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetPlannedDays(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "start and end are required",
		})
	}

	days, err := h.Planner.GetPlannedDays(c.UserContext(), userID, start, end)
	if err != nil {
		return respondError(c, err, "Failed to load planned days")
	}
	return c.JSON(days)
}

func (h *Handler) CreateTask(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	task, err := h.Planner.AddTask(c.UserContext(), userID, c.Params("date"), req)
	if err != nil {
		return respondError(c, err, "Failed to create task")
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *Handler) ToggleTask(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	taskID, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, "task")
	}

	result, err := h.Tracker.ToggleTask(c.UserContext(), userID, taskID)
	if err != nil {
		return respondError(c, err, "Failed to toggle task")
	}
	return c.JSON(result)
}

func (h *Handler) SetTaskQuantity(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	taskID, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, "task")
	}

	var req models.SetQuantityRequest
	if err := c.BodyParser(&req); err != nil || req.Quantity == nil {
		return badBody(c)
	}

	result, err := h.Tracker.SetTaskQuantity(c.UserContext(), userID, taskID, *req.Quantity)
	if err != nil {
		return respondError(c, err, "Failed to update task")
	}
	return c.JSON(result)
}
