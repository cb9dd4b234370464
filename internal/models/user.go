package models

import (
	"time"
)

// Auth providers recorded on User.Provider.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User represents an account. PasswordHash is nil for accounts created
// through an OAuth provider.
type User struct {
	UserID       uint64  `gorm:"primaryKey;autoIncrement"`
	Email        string  `gorm:"uniqueIndex;size:255;not null"`
	Name         string  `gorm:"size:255;not null"`
	PasswordHash *string `gorm:"size:255"`
	Provider     string  `gorm:"size:32;not null;default:local"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// PublicUser is the externally visible identity shape
type PublicUser struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public strips credential fields from a User
func (u User) Public() PublicUser {
	return PublicUser{ID: u.UserID, Email: u.Email, Name: u.Name}
}
