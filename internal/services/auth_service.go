package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/notehq/note-api/internal/config"
	"github.com/notehq/note-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Signup registers a local-credential account.
func Signup(db *gorm.DB, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("signup: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	hash := string(hashed)
	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
		Provider:     models.ProviderLocal,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	return &user, nil
}

// Signin verifies local credentials. OAuth-only accounts have no
// password hash and always fail here.
func Signin(db *gorm.DB, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("signin: %w", err)
	}

	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetUser loads a user by identifier.
func GetUser(db *gorm.DB, userID uint64) (*models.User, error) {
	var user models.User
	err := db.Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GoogleOAuthConfig builds the oauth2 config for the Google signin flow.
func GoogleOAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// GoogleProfile is the subset of the userinfo response we consume.
type GoogleProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// FetchGoogleProfile exchanges the authorization code and fetches the
// user's profile from the userinfo endpoint.
func FetchGoogleProfile(ctx context.Context, conf *oauth2.Config, code string) (*GoogleProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth exchange: %w", err)
	}

	client := conf.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("oauth userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth userinfo: unexpected status %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("oauth userinfo: %w", err)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("oauth userinfo: no email in profile")
	}

	return &profile, nil
}

// UpsertOAuthUser finds the account for an OAuth profile, creating it on
// first login. Reports whether the account was newly created.
func UpsertOAuthUser(db *gorm.DB, profile *GoogleProfile) (*models.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(profile.Email))

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("oauth upsert: %w", err)
	}

	user = models.User{
		Email:    email,
		Name:     profile.Name,
		Provider: models.ProviderGoogle,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, false, fmt.Errorf("oauth upsert: %w", err)
	}

	return &user, true, nil
}
