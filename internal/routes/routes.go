package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/petra/fitsquad/internal/config"
	"github.com/petra/fitsquad/internal/handlers"
	"github.com/petra/fitsquad/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(app *fiber.App, cfg *config.Config) {
	app.Get("/health", handlers.Health)

	metrics := adaptor.HTTPHandler(promhttp.Handler())
	if cfg.MetricsUser != "" {
		app.Get("/metrics", basicauth.New(basicauth.Config{
			Users: map[string]string{cfg.MetricsUser: cfg.MetricsPass},
		}), metrics)
	} else {
		app.Get("/metrics", metrics)
	}

	app.Static("/static", "./static")

	// Credential routes, throttled per IP
	app.Get("/register", handlers.ShowRegister)
	app.Post("/register", middleware.RateLimit(), handlers.Register)
	app.Get("/login", handlers.ShowLogin)
	app.Post("/login", middleware.RateLimit(), handlers.Login)
	app.Post("/logout", handlers.Logout)

	protected := app.Group("/", middleware.Protected())

	protected.Get("/", handlers.Dashboard)
	protected.Post("/log", handlers.QuickLog)

	protected.Get("/profile", handlers.Profile)
	protected.Post("/profile/goal", handlers.UpdateGoal)
	protected.Post("/profile/password", handlers.UpdatePassword)

	challenges := protected.Group("/challenges")
	challenges.Get("/new", handlers.NewChallenge)
	challenges.Post("/", handlers.CreateChallenge)
	challenges.Post("/join", handlers.JoinByCode)
	challenges.Get("/:id", handlers.ShowChallenge)
	challenges.Post("/:id/participants", handlers.AddParticipant)
	challenges.Post("/:id/log", handlers.LogActivity)
	challenges.Post("/:id/close", handlers.CloseChallenge)
	challenges.Post("/:id/delete", handlers.DeleteChallenge)

	// Shared invite links
	protected.Get("/join/:code", handlers.JoinByLink)

	admin := protected.Group("/admin", middleware.RequireAdmin())
	admin.Get("/users", handlers.AdminUsers)
	admin.Post("/users/:id/reset", handlers.AdminResetPassword)
	admin.Post("/users/:id/delete", handlers.AdminDeleteUser)
}
