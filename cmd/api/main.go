package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/sajidhasan/ecomart-golang/internal/auth"
	"github.com/sajidhasan/ecomart-golang/internal/config"
	"github.com/sajidhasan/ecomart-golang/internal/database"
	"github.com/sajidhasan/ecomart-golang/internal/handlers"
	"github.com/sajidhasan/ecomart-golang/internal/routes"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// 1. --- Build Config ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. --- Database Connection ---
	db, err := database.OpenDB(cfg.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 3. --- Application Setup ---
	// Inject all dependencies into the Handlers struct.
	app := &handlers.Handlers{
		DB:     db,
		Auth:   auth.NewTokenManager(cfg.JWTSecret),
		Config: cfg,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	log.Printf("Starting Ecomart API server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
