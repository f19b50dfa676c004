package main

import (
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/arnold/habits-api/internal/config"
	"github.com/arnold/habits-api/internal/database"
	"github.com/arnold/habits-api/internal/handlers"
	"github.com/arnold/habits-api/internal/logger"
	"github.com/arnold/habits-api/internal/repository"
	"github.com/arnold/habits-api/internal/routes"
	"github.com/arnold/habits-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel})

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", "error", err)
	}

	store := repository.New(db)
	clock := services.Clock(services.UTCClock)
	h := &handlers.Handler{
		Planner:    services.NewPlanner(store, cfg.MaxRangeDays),
		Tracker:    services.NewTracker(store, clock),
		Habits:     services.NewHabits(store),
		Challenges: services.NewChallenges(store, clock),
		Profiles:   services.NewProfiles(store),
	}

	app := fiber.New(fiber.Config{
		AppName: "habits-api",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(recover.New())
	routes.Setup(app, h, cfg.JWTSecret)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "port", cfg.Port, "database", dbKind(cfg.DatabaseURL))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}

func dbKind(url string) string {
	if strings.HasPrefix(url, "postgres") {
		return "postgres"
	}
	return "sqlite"
}
