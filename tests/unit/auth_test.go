package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/notehq/note-api/tests/helpers"
)

// TestSignupSigninFlow tests POST /api/auth/signup and /api/auth/signin
func TestSignupSigninFlow(t *testing.T) {
	db := helpers.SetupTestDB(t)
	app := newTestApp(t, db)

	body, _ := json.Marshal(map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
		"name":     "Alice",
	})
	req := httptest.NewRequest("POST", "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 201)

	var signup struct {
		Token string `json:"token"`
		User  struct {
			ID    uint64 `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
	}
	helpers.ParseJSON(t, resp, &signup)

	if signup.Token == "" {
		t.Error("Expected a token in the signup response")
	}
	if signup.User.Email != "alice@example.com" {
		t.Errorf("Expected normalized email, got %q", signup.User.Email)
	}

	// Duplicate signup conflicts
	req = httptest.NewRequest("POST", "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 409)

	// Signin with the same credentials
	body, _ = json.Marshal(map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	req = httptest.NewRequest("POST", "/api/auth/signin", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var signin struct {
		Token string `json:"token"`
	}
	helpers.ParseJSON(t, resp, &signin)
	if signin.Token == "" {
		t.Error("Expected a token in the signin response")
	}

	// The issued token works against a protected route
	req = httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+signin.Token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
}

// TestSigninRejectsBadCredentials tests the 401 paths of /api/auth/signin
func TestSigninRejectsBadCredentials(t *testing.T) {
	db := helpers.SetupTestDB(t)
	app := newTestApp(t, db)

	body, _ := json.Marshal(map[string]string{
		"email":    "bob@example.com",
		"password": "initial-pass",
		"name":     "Bob",
	})
	req := httptest.NewRequest("POST", "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "bob@example.com", "not-it"},
		{"unknown email", "ghost@example.com", "initial-pass"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(map[string]string{
				"email":    tc.email,
				"password": tc.password,
			})
			req := httptest.NewRequest("POST", "/api/auth/signin", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to execute request: %v", err)
			}
			helpers.AssertStatus(t, resp, 401)
		})
	}
}

// TestSignupValidation tests the 400 path of /api/auth/signup
func TestSignupValidation(t *testing.T) {
	db := helpers.SetupTestDB(t)
	app := newTestApp(t, db)

	body, _ := json.Marshal(map[string]string{
		"email":    "not-an-email",
		"password": "pass",
		"name":     "X",
	})
	req := httptest.NewRequest("POST", "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)
}

// TestRequireAuth tests rejection of missing and malformed tokens
func TestRequireAuth(t *testing.T) {
	db := helpers.SetupTestDB(t)
	app := newTestApp(t, db)

	req := httptest.NewRequest("GET", "/api/documents", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 401)

	req = httptest.NewRequest("GET", "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 401)
}

// TestMe tests GET /api/me
func TestMe(t *testing.T) {
	db := helpers.SetupTestDB(t)
	app := newTestApp(t, db)
	user := helpers.CreateTestUser(t, db, "me@example.com", "Me")

	req := httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", helpers.BearerToken(t, user))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var result struct {
		ID    uint64 `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	helpers.ParseJSON(t, resp, &result)
	if result.ID != user.UserID || result.Email != "me@example.com" {
		t.Errorf("Unexpected profile: %+v", result)
	}
}
