package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/propmitra/propmitra-backend/pkg/database"
	"github.com/propmitra/propmitra-backend/pkg/logger"
	"github.com/propmitra/propmitra-backend/pkg/routes"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	zl, err := logger.Init()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000, https://propmitra.in",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if _, err := database.InitDB(); err != nil {
		zl.Fatal("failed to connect to the database", zap.Error(err))
	}

	if _, err := database.InitRedis(); err != nil {
		// Search falls back to postgres-only when the cache is down.
		zl.Warn("redis unavailable, search cache disabled", zap.Error(err))
	}

	routes.RegisterUserRoutes(app)
	routes.RegisterListingRoutes(app)
	routes.RegisterAdminRoutes(app)
	routes.RegisterUnlockRoutes(app)
	routes.RegisterSavedRoutes(app)
	routes.RegisterNotificationRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	zl.Info("starting server", zap.String("port", port))
	log.Fatal(app.Listen(":" + port))
}
