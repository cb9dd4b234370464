package handlers_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/notehq/note-api/internal/config"
	"github.com/notehq/note-api/internal/handlers"
	"github.com/notehq/note-api/internal/middleware"
	"github.com/notehq/note-api/internal/types"
	"github.com/notehq/note-api/tests/helpers"
	"gorm.io/gorm"
)

// testErrorHandler mirrors the server's global error handler so the
// middleware's status codes come through in tests.
func testErrorHandler(c *fiber.Ctx, err error) error {
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

// newTestApp wires the API routes the way cmd/server does, against the
// given database and the shared test JWT secret.
func newTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	cfg := &config.Config{JWTSecret: helpers.TestJWTSecret}

	app := fiber.New(fiber.Config{
		ErrorHandler: testErrorHandler,
	})
	api := app.Group("/api")

	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg}
	docHandler := &handlers.DocumentHandler{DB: db}
	collabHandler := &handlers.CollaboratorHandler{DB: db}

	api.Post("/auth/signup", authHandler.Signup)
	api.Post("/auth/signin", authHandler.Signin)

	requireAuth := middleware.RequireAuth([]byte(cfg.JWTSecret))
	api.Get("/me", requireAuth, authHandler.Me)
	api.Get("/user/permissions", requireAuth, docHandler.Permissions)
	api.Get("/documents", requireAuth, docHandler.ListDocuments)
	api.Post("/documents", requireAuth, docHandler.CreateDocument)
	api.Get("/documents/:id", requireAuth, docHandler.GetDocument)
	api.Put("/documents/:id", requireAuth, docHandler.SaveDocument)
	api.Delete("/documents/:id", requireAuth, docHandler.DeleteDocument)
	api.Get("/documents/:id/collaborators", requireAuth, collabHandler.ListCollaborators)
	api.Post("/documents/:id/collaborators", requireAuth, collabHandler.InviteCollaborator)
	api.Put("/documents/:id/collaborators", requireAuth, collabHandler.UpdateCollaboratorRole)
	api.Delete("/documents/:id/collaborators", requireAuth, collabHandler.RemoveCollaborator)

	return app
}
