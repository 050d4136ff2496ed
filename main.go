package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/petra/fitsquad/internal/config"
	"github.com/petra/fitsquad/internal/database"
	"github.com/petra/fitsquad/internal/middleware"
	"github.com/petra/fitsquad/internal/routes"
	"github.com/petra/fitsquad/internal/views"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	log.Println("Database ready at", cfg.DatabaseURL)

	middleware.InitPrometheus()
	middleware.InitSession()
	go middleware.CleanupVisitors()

	app := fiber.New(fiber.Config{
		Views: views.Engine(),
	})

	app.Use(recover.New())
	app.Use(fiberlog.New())
	app.Use(middleware.Monitor())

	routes.Setup(app, cfg)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("Server failed:", err)
		}
	}()
	log.Println("FitSquad listening on port", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Println("Forced shutdown:", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Goodbye.")
}
