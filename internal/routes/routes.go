package routes

import (
	"github.com/arnold/habits-api/internal/handlers"
	"github.com/arnold/habits-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, h *handlers.Handler, jwtSecret string) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	protected := api.Group("/", middleware.Protected(jwtSecret))

	protected.Get("/me", h.GetMe)
	protected.Put("/me", h.UpdateProfile)

	// Planned days materialize on read
	protected.Get("/days", h.GetPlannedDays)
	protected.Post("/days/:date/tasks", h.CreateTask)

	tasks := protected.Group("/tasks")
	tasks.Post("/:id/toggle", h.ToggleTask)
	tasks.Put("/:id/quantity", h.SetTaskQuantity)

	habits := protected.Group("/habits")
	habits.Get("/", h.GetHabits)
	habits.Post("/", h.CreateHabit)
	habits.Put("/:id", h.UpdateHabit)
	habits.Put("/:id/schedule", h.SetHabitSchedule)
	habits.Post("/:id/archive", h.ArchiveHabit)

	challenges := protected.Group("/challenges")
	challenges.Get("/", h.GetChallenges)
	// Challenges are user-authored; any signed-in user may create one.
	challenges.Post("/", h.CreateChallenge)
	challenges.Post("/:id/join", h.JoinChallenge)
	challenges.Get("/:id/progress", h.GetChallengeProgress)
}
