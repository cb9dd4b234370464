package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/notehq/note-api/internal/config"
	"github.com/notehq/note-api/internal/handlers"
	"github.com/notehq/note-api/internal/middleware"
	"github.com/notehq/note-api/internal/services"
	"github.com/notehq/note-api/tests/helpers"
)

func newAssistApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	handler := &handlers.AssistHandler{Client: services.NewAssistClient(cfg)}
	app.Post("/api/assist",
		middleware.RequireAuth([]byte(helpers.TestJWTSecret)), handler.Assist)
	return app
}

// TestAssist tests POST /api/assist against a stub upstream
func TestAssist(t *testing.T) {
	db := helpers.SetupTestDB(t)
	user := helpers.CreateTestUser(t, db, "writer@example.com", "Writer")

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"generated text"}}]}`))
	}))
	defer upstream.Close()

	app := newAssistApp(&config.Config{
		JWTSecret: helpers.TestJWTSecret,
		AIAPIURL:  upstream.URL,
		AIModel:   "test-model",
	})

	req := httptest.NewRequest("POST", "/api/assist",
		bytes.NewReader([]byte(`{"prompt":"write an intro"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", helpers.BearerToken(t, user))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var result struct {
		Response string `json:"response"`
	}
	helpers.ParseJSON(t, resp, &result)
	if result.Response != "generated text" {
		t.Errorf("Unexpected assist response: %q", result.Response)
	}
}

// TestAssistUnconfigured tests the 503 path when no endpoint is set
func TestAssistUnconfigured(t *testing.T) {
	db := helpers.SetupTestDB(t)
	user := helpers.CreateTestUser(t, db, "writer@example.com", "Writer")

	app := newAssistApp(&config.Config{JWTSecret: helpers.TestJWTSecret})

	req := httptest.NewRequest("POST", "/api/assist",
		bytes.NewReader([]byte(`{"prompt":"hello"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", helpers.BearerToken(t, user))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 503)
}

// TestAssistEmptyPrompt tests the 400 path
func TestAssistEmptyPrompt(t *testing.T) {
	db := helpers.SetupTestDB(t)
	user := helpers.CreateTestUser(t, db, "writer@example.com", "Writer")

	app := newAssistApp(&config.Config{JWTSecret: helpers.TestJWTSecret})

	req := httptest.NewRequest("POST", "/api/assist", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", helpers.BearerToken(t, user))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)
}
