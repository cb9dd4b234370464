package services

import (
	"errors"
	"fmt"

	"github.com/notehq/note-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InviteCollaborator grants inviteeEmail the given role on documentID.
// Owner-only. Re-inviting an existing collaborator overwrites the role
// instead of erroring; inviting the owner themselves is rejected.
// Returns the grant identifier.
func InviteCollaborator(db *gorm.DB, ownerID, documentID uint64, inviteeEmail, role string) (uint64, error) {
	if !models.ValidRole(role) {
		return 0, fmt.Errorf("%w: role %q", ErrInvalidOperation, role)
	}

	if err := requireOwner(db, ownerID, documentID); err != nil {
		return 0, err
	}

	var invitee models.User
	err := db.Where("email = ?", inviteeEmail).First(&invitee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("invite collaborator: %w", err)
	}

	if invitee.UserID == ownerID {
		return 0, ErrInvalidOperation
	}

	// Upsert on the (document_id, user_id) unique key. Concurrent
	// invites for the same pair collapse to one row, last role wins.
	grant := models.Collaborator{
		DocumentID: documentID,
		UserID:     invitee.UserID,
		Role:       role,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "document_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(&grant).Error
	if err != nil {
		return 0, fmt.Errorf("invite collaborator: %w", err)
	}

	// On a conflict-update path some dialects do not report the row id
	// back, so read it out.
	if grant.CollaboratorID == 0 {
		if err := db.Where("document_id = ? AND user_id = ?", documentID, invitee.UserID).
			First(&grant).Error; err != nil {
			return 0, fmt.Errorf("invite collaborator: %w", err)
		}
	}

	return grant.CollaboratorID, nil
}

// UpdateCollaboratorRole overwrites the role of an existing grant.
// Owner-only. Setting the same role twice succeeds idempotently.
func UpdateCollaboratorRole(db *gorm.DB, ownerID, documentID, targetUserID uint64, role string) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("%w: role %q", ErrInvalidOperation, role)
	}

	if err := requireOwner(db, ownerID, documentID); err != nil {
		return err
	}

	var grant models.Collaborator
	err := db.Where("document_id = ? AND user_id = ?", documentID, targetUserID).
		First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update collaborator role: %w", err)
	}

	if grant.Role == role {
		return nil
	}

	err = db.Model(&models.Collaborator{}).
		Where("collaborator_id = ?", grant.CollaboratorID).
		Update("role", role).Error
	if err != nil {
		return fmt.Errorf("update collaborator role: %w", err)
	}

	return nil
}

// RemoveCollaborator deletes the grant for (documentID, targetUserID).
// Owner-only. Removing an absent grant is a success, not an error.
func RemoveCollaborator(db *gorm.DB, ownerID, documentID, targetUserID uint64) error {
	if err := requireOwner(db, ownerID, documentID); err != nil {
		return err
	}

	err := db.Where("document_id = ? AND user_id = ?", documentID, targetUserID).
		Delete(&models.Collaborator{}).Error
	if err != nil {
		return fmt.Errorf("remove collaborator: %w", err)
	}

	return nil
}

// ListCollaborators returns every grant on the document with the
// grantee's public identity. Owner-only: collaborators cannot enumerate
// each other.
func ListCollaborators(db *gorm.DB, ownerID, documentID uint64) ([]models.CollaboratorView, error) {
	if err := requireOwner(db, ownerID, documentID); err != nil {
		return nil, err
	}

	var grants []models.Collaborator
	err := db.Preload("User").
		Where("document_id = ?", documentID).
		Order("collaborator_id").
		Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}

	views := make([]models.CollaboratorView, 0, len(grants))
	for _, g := range grants {
		views = append(views, models.CollaboratorView{
			ID:   g.CollaboratorID,
			Role: g.Role,
			User: g.User.Public(),
		})
	}

	return views, nil
}
