package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/recipekit/recipedb/internal/config"
	"github.com/recipekit/recipedb/internal/database"
	"github.com/recipekit/recipedb/internal/handlers"
	"github.com/recipekit/recipedb/internal/middleware"
	"github.com/recipekit/recipedb/internal/services"
	"github.com/recipekit/recipedb/internal/types"

	_ "github.com/recipekit/recipedb/docs/api" // Swagger docs
)

// @title RecipeDB API
// @version 1.0.0
// @description Recipe management data service with multi-database support
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/recipekit/recipedb

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Optional startup seeding. A seeding failure is logged, never fatal.
	if cfg.SeedOnStart {
		if err := services.Seed(db); err != nil {
			log.Printf("Seeding failed (continuing without seed data): %v", err)
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("recipedb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	ingredientHandler := &handlers.IngredientHandler{DB: db}
	recipeHandler := &handlers.RecipeHandler{DB: db}
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}

	api.Get("/health", healthHandler.GetHealth)

	// Ingredient routes
	api.Get("/ingredient", ingredientHandler.GetIngredients)
	api.Get("/ingredient/:id", ingredientHandler.GetIngredient)
	api.Get("/ingredient/:id/recipe", ingredientHandler.GetIngredientRecipes)
	api.Post("/ingredient", ingredientHandler.CreateIngredient)
	api.Put("/ingredient/:id", ingredientHandler.UpdateIngredient)
	api.Delete("/ingredient/:id", ingredientHandler.DeleteIngredient)

	// Recipe routes
	api.Get("/recipe", recipeHandler.GetRecipes)
	api.Get("/recipe/:id", recipeHandler.GetRecipe)
	api.Post("/recipe", recipeHandler.CreateRecipe)
	api.Put("/recipe/:id", recipeHandler.UpdateRecipe)
	api.Delete("/recipe/:id", recipeHandler.DeleteRecipe)

	// Recipe-ingredient association routes
	api.Get("/recipe/:id/ingredient", recipeHandler.GetRecipeIngredients)
	api.Get("/recipe/:id/ingredient/:ingredientId", recipeHandler.GetRecipeIngredient)
	api.Post("/recipe/:id/ingredient", recipeHandler.CreateRecipeIngredient)
	api.Put("/recipe/:id/ingredient/:ingredientId", recipeHandler.UpdateRecipeIngredient)
	api.Delete("/recipe/:id/ingredient/:ingredientId", recipeHandler.DeleteRecipeIngredient)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Errors raised outside handlers carry their own code and type
	var ce *types.CustomError
	if errors.As(err, &ce) {
		code = ce.Code
		message = ce.Message
		errorType = ce.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
