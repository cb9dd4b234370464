package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/notehq/note-api/internal/database"
	"github.com/notehq/note-api/internal/models"
	"github.com/notehq/note-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to create test database")

	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")

	return db
}

func createUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()

	user := models.User{Email: email, Name: name, Provider: models.ProviderLocal}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createDocument(t *testing.T, db *gorm.DB, ownerID uint64, name string) *models.Document {
	t.Helper()

	doc := models.Document{
		OwnerID:      ownerID,
		DocumentName: name,
		Content:      datatypes.JSON(`{"ops":[]}`),
	}
	require.NoError(t, db.Create(&doc).Error)
	return &doc
}

func createGrant(t *testing.T, db *gorm.DB, documentID, userID uint64, role string) {
	t.Helper()

	grant := models.Collaborator{DocumentID: documentID, UserID: userID, Role: role}
	require.NoError(t, db.Create(&grant).Error)
}

func TestResolveAccess_Owner(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, "owner@example.com", "Owner")
	doc := createDocument(t, db, owner.UserID, "notes")

	access, err := services.ResolveAccess(db, owner.UserID, doc.DocumentID)
	require.NoError(t, err)
	require.Equal(t, models.RoleOwner, access.Role)
	require.True(t, access.CanRead)
	require.True(t, access.CanWrite)
	require.True(t, access.IsOwner())
}

func TestResolveAccess_MissingDocument(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "user@example.com", "User")

	_, err := services.ResolveAccess(db, user.UserID, 9999)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestResolveAccess_NoGrant(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, "owner@example.com", "Owner")
	stranger := createUser(t, db, "stranger@example.com", "Stranger")
	doc := createDocument(t, db, owner.UserID, "notes")

	// Indistinguishable from a document that does not exist
	_, err := services.ResolveAccess(db, stranger.UserID, doc.DocumentID)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestResolveAccess_GrantRoles(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		canWrite bool
	}{
		{"view grant reads only", models.RoleView, false},
		{"edit grant reads and writes", models.RoleEdit, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			owner := createUser(t, db, "owner@example.com", "Owner")
			collab := createUser(t, db, "collab@example.com", "Collab")
			doc := createDocument(t, db, owner.UserID, "notes")
			createGrant(t, db, doc.DocumentID, collab.UserID, tt.role)

			access, err := services.ResolveAccess(db, collab.UserID, doc.DocumentID)
			require.NoError(t, err)
			require.Equal(t, tt.role, access.Role)
			require.True(t, access.CanRead)
			require.Equal(t, tt.canWrite, access.CanWrite)
			require.False(t, access.IsOwner())
		})
	}
}

func TestAuthorizeRead_AllRoles(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, "owner@example.com", "Owner")
	viewer := createUser(t, db, "viewer@example.com", "Viewer")
	doc := createDocument(t, db, owner.UserID, "notes")
	createGrant(t, db, doc.DocumentID, viewer.UserID, models.RoleView)

	got, access, err := services.AuthorizeRead(db, viewer.UserID, doc.DocumentID)
	require.NoError(t, err)
	require.Equal(t, doc.DocumentID, got.DocumentID)
	require.Equal(t, models.RoleView, access.Role)

	got, access, err = services.AuthorizeRead(db, owner.UserID, doc.DocumentID)
	require.NoError(t, err)
	require.Equal(t, doc.DocumentID, got.DocumentID)
	require.True(t, access.IsOwner())
}

func TestAuthorizeWrite(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, "owner@example.com", "Owner")
	viewer := createUser(t, db, "viewer@example.com", "Viewer")
	editor := createUser(t, db, "editor@example.com", "Editor")
	stranger := createUser(t, db, "stranger@example.com", "Stranger")
	doc := createDocument(t, db, owner.UserID, "notes")
	createGrant(t, db, doc.DocumentID, viewer.UserID, models.RoleView)
	createGrant(t, db, doc.DocumentID, editor.UserID, models.RoleEdit)

	_, err := services.AuthorizeWrite(db, owner.UserID, doc.DocumentID)
	require.NoError(t, err)

	_, err = services.AuthorizeWrite(db, editor.UserID, doc.DocumentID)
	require.NoError(t, err)

	_, err = services.AuthorizeWrite(db, viewer.UserID, doc.DocumentID)
	require.ErrorIs(t, err, services.ErrDenied)

	_, err = services.AuthorizeWrite(db, stranger.UserID, doc.DocumentID)
	require.ErrorIs(t, err, services.ErrNotFound)
}

// TestAccessLifecycle walks a full grant lifecycle: no access, invite as
// view, upgrade to edit, attempt an owner-only operation, then removal.
func TestAccessLifecycle(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice@example.com", "Alice")
	bob := createUser(t, db, "bob@example.com", "Bob")
	carol := createUser(t, db, "carol@example.com", "Carol")
	doc := createDocument(t, db, alice.UserID, "shared notes")

	_, err := services.ResolveAccess(db, bob.UserID, doc.DocumentID)
	require.ErrorIs(t, err, services.ErrNotFound)

	_, err = services.InviteCollaborator(db, alice.UserID, doc.DocumentID, bob.Email, models.RoleView)
	require.NoError(t, err)

	access, err := services.ResolveAccess(db, bob.UserID, doc.DocumentID)
	require.NoError(t, err)
	require.Equal(t, models.RoleView, access.Role)
	require.False(t, access.CanWrite)

	_, err = services.InviteCollaborator(db, alice.UserID, doc.DocumentID, bob.Email, models.RoleEdit)
	require.NoError(t, err)

	access, err = services.ResolveAccess(db, bob.UserID, doc.DocumentID)
	require.NoError(t, err)
	require.Equal(t, models.RoleEdit, access.Role)
	require.True(t, access.CanWrite)

	// An edit collaborator may not invite others
	_, err = services.InviteCollaborator(db, bob.UserID, doc.DocumentID, carol.Email, models.RoleView)
	require.ErrorIs(t, err, services.ErrDenied)

	require.NoError(t, services.RemoveCollaborator(db, alice.UserID, doc.DocumentID, bob.UserID))

	_, err = services.ResolveAccess(db, bob.UserID, doc.DocumentID)
	require.ErrorIs(t, err, services.ErrNotFound)
}
