package helpers

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/notehq/note-api/internal/database"
	"github.com/notehq/note-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates a migrated in-memory SQLite database
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CreateTestUser inserts a local-provider user
func CreateTestUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()

	user := models.User{Email: email, Name: name, Provider: models.ProviderLocal}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

// CreateTestDocument inserts a document owned by ownerID
func CreateTestDocument(t *testing.T, db *gorm.DB, ownerID uint64, name string) *models.Document {
	t.Helper()

	doc := models.Document{
		OwnerID:      ownerID,
		DocumentName: name,
		Content:      datatypes.JSON(`{"ops":[]}`),
	}
	if err := db.Create(&doc).Error; err != nil {
		t.Fatalf("Failed to create test document: %v", err)
	}
	return &doc
}

// CreateTestGrant inserts a collaborator grant
func CreateTestGrant(t *testing.T, db *gorm.DB, documentID, userID uint64, role string) *models.Collaborator {
	t.Helper()

	grant := models.Collaborator{DocumentID: documentID, UserID: userID, Role: role}
	if err := db.Create(&grant).Error; err != nil {
		t.Fatalf("Failed to create test grant: %v", err)
	}
	return &grant
}
