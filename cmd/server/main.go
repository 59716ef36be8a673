// Entry point for the Soccer League API server. cmd/ holds the executable;
// everything reusable lives under internal/.
package main

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/lmittmann/tint"

	"github.com/mwessels/soccer-league/internal/config"
	"github.com/mwessels/soccer-league/internal/database"
	"github.com/mwessels/soccer-league/internal/handlers"
	"github.com/mwessels/soccer-league/internal/live"
	"github.com/mwessels/soccer-league/internal/store"
)

func main() {
	cfg := config.Load()

	// Colored, human-readable logs in development; structured JSON lines in
	// production where a log collector is reading them.
	var logHandler slog.Handler
	if cfg.Env == "production" {
		logHandler = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		logHandler = tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug})
	}
	log := slog.New(logHandler)
	slog.SetDefault(log)

	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is not set")
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		log.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	log.Info("database schema ready")

	hub := live.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName: "Soccer League API",
	})
	app.Use(logger.New())
	app.Use(cors.New())

	handlers.Register(app, store.New(db), cfg, hub)

	log.Info("listening", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server closed", "error", err)
		os.Exit(1)
	}
}
