package helpers

import (
	"testing"

	"github.com/notehq/note-api/internal/models"
	"github.com/notehq/note-api/internal/utils"
)

// TestJWTSecret is the signing secret used across the test suite
const TestJWTSecret = "test-secret-not-for-production"

// BearerToken returns an Authorization header value for the user
func BearerToken(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := utils.GenerateJWT([]byte(TestJWTSecret), user.UserID, user.Email)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return "Bearer " + token
}
