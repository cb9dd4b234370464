package main

import (
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
	"github.com/notehq/note-api/internal/config"
	"github.com/notehq/note-api/internal/database"
	"github.com/notehq/note-api/internal/handlers"
	"github.com/notehq/note-api/internal/middleware"
	"github.com/notehq/note-api/internal/services"
	"github.com/notehq/note-api/internal/types"

	_ "github.com/notehq/note-api/docs/api" // Swagger docs
)

// @title NotE API
// @version 1.0.0
// @description Document service for the NotE editor: accounts, documents, collaborator sharing
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/notehq/note-api

// @license.name MIT

// @host localhost:3002
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("note_api")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg}
	documentHandler := &handlers.DocumentHandler{DB: db}
	collaboratorHandler := &handlers.CollaboratorHandler{DB: db}
	assistHandler := &handlers.AssistHandler{Client: services.NewAssistClient(cfg)}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	requireAuth := middleware.RequireAuth([]byte(cfg.JWTSecret))

	// Public routes
	api.Get("/health", healthHandler.Health)
	api.Post("/auth/signup", authHandler.Signup)
	api.Post("/auth/signin", authHandler.Signin)
	api.Get("/auth/google", authHandler.GoogleRedirect)
	api.Get("/auth/google/callback", authHandler.GoogleCallback)

	// Authenticated routes
	api.Get("/me", requireAuth, authHandler.Me)
	api.Get("/user/permissions", requireAuth, documentHandler.Permissions)

	api.Get("/documents", requireAuth, documentHandler.ListDocuments)
	api.Post("/documents", requireAuth, documentHandler.CreateDocument)
	api.Get("/documents/:id", requireAuth, documentHandler.GetDocument)
	api.Put("/documents/:id", requireAuth, documentHandler.SaveDocument)
	api.Delete("/documents/:id", requireAuth, documentHandler.DeleteDocument)

	api.Get("/documents/:id/collaborators", requireAuth, collaboratorHandler.ListCollaborators)
	api.Post("/documents/:id/collaborators", requireAuth, collaboratorHandler.InviteCollaborator)
	api.Put("/documents/:id/collaborators", requireAuth, collaboratorHandler.UpdateCollaboratorRole)
	api.Delete("/documents/:id/collaborators", requireAuth, collaboratorHandler.RemoveCollaborator)

	api.Post("/assist", requireAuth, assistHandler.Assist)

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

	// Middleware errors carry their own status and type tag
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
