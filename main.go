package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/kaplack/siget-sub000/internal/config"
	"github.com/kaplack/siget-sub000/internal/database"
	"github.com/kaplack/siget-sub000/internal/handlers"
	"github.com/kaplack/siget-sub000/internal/middleware"
	"github.com/kaplack/siget-sub000/internal/routes"
	"github.com/kaplack/siget-sub000/internal/versioning"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	middleware.UseSecret(cfg.JWTSecret)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	handlers.Versioning = versioning.NewService(database.DB, cfg.Holidays)

	app := fiber.New(fiber.Config{AppName: "siget-sub000"})
	app.Use(recover.New())
	app.Use(cors.New())

	routes.Setup(app)

	log.Printf("Listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
