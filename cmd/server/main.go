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
	"github.com/joho/godotenv"
	"github.com/plagiagia/OliveAIFarmer/internal/config"
	"github.com/plagiagia/OliveAIFarmer/internal/database"
	"github.com/plagiagia/OliveAIFarmer/internal/handlers"
	"github.com/plagiagia/OliveAIFarmer/internal/middleware"
	"github.com/plagiagia/OliveAIFarmer/internal/types"

	_ "github.com/plagiagia/OliveAIFarmer/docs/api" // Swagger docs
)

// @title OliveAIFarmer API
// @version 1.0.0
// @description Olive farm management service: farm and tree registry, care activities, harvest seasons and the variety knowledge base
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/plagiagia/OliveAIFarmer

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// .env is optional; deployments keep configuration in the environment
	_ = godotenv.Load()

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

	// Seed the variety knowledge base
	if cfg.SeedVarieties {
		if err := database.SeedVarieties(db); err != nil {
			var cerr *types.CustomError
			if errors.As(err, &cerr) && cerr.Type == types.ErrTypePartial {
				// The seed is idempotent; a restart retries the failed subset.
				log.Printf("Variety seed incomplete: %v", err)
			} else {
				log.Fatalf("Failed to seed olive varieties: %v", err)
			}
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("oliveaifarmer")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	farmHandler := &handlers.FarmHandler{DB: db}
	harvestHandler := &handlers.HarvestHandler{DB: db}
	activityHandler := &handlers.ActivityHandler{DB: db}
	varietyHandler := &handlers.VarietyHandler{DB: db}
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}

	auth := middleware.AuthFarmer(cfg)

	// Health (no auth)
	api.Get("/healthcheck", healthHandler.HealthCheck)

	// Variety knowledge base (read-only, no auth)
	api.Get("/varieties", varietyHandler.ListVarieties)
	api.Get("/varieties/:variety/recommendations", varietyHandler.GetRecommendations)
	api.Get("/varieties/:variety", varietyHandler.GetVariety)

	// Farm routes
	api.Get("/farms", auth, farmHandler.ListFarms)
	api.Post("/farms", auth, farmHandler.CreateFarm)
	api.Get("/farms/:farmId/stats", auth, farmHandler.GetFarmStats)
	api.Get("/farms/:farmId", auth, farmHandler.GetFarm)
	api.Put("/farms/:farmId", auth, farmHandler.UpdateFarm)
	api.Delete("/farms/:farmId", auth, farmHandler.DeleteFarm)

	// Harvest routes
	api.Get("/harvests", auth, harvestHandler.ListHarvests)
	api.Get("/harvests/grouped", auth, harvestHandler.GroupedHarvests)
	api.Post("/harvests", auth, harvestHandler.CreateHarvest)
	api.Post("/harvests/complete-year", auth, harvestHandler.CompleteHarvestYear)
	api.Post("/harvests/:harvestId/complete", auth, harvestHandler.CompleteHarvest)
	api.Put("/harvests/:harvestId", auth, harvestHandler.UpdateHarvest)
	api.Delete("/harvests/:harvestId", auth, harvestHandler.DeleteHarvest)
	api.Delete("/harvests", auth, harvestHandler.DeleteHarvestYear)

	// Activity routes
	api.Get("/activities", auth, activityHandler.ListActivities)
	api.Post("/activities", auth, activityHandler.CreateActivity)
	api.Put("/activities/:activityId", auth, activityHandler.UpdateActivity)
	api.Delete("/activities/:activityId", auth, activityHandler.DeleteActivity)

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

	// The Authorizer client is created lazily by the auth middleware
	log.Printf("Authorizer will be initialized on first authenticated request")

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

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
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
