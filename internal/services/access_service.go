package services

import (
	"errors"
	"fmt"

	"github.com/notehq/note-api/internal/models"
	"gorm.io/gorm"
)

// AccessResult is the access decision for a (user, document) pair.
type AccessResult struct {
	Role     string `json:"role"`
	CanRead  bool   `json:"-"`
	CanWrite bool   `json:"-"`
}

// IsOwner reports whether the decision carries owner privilege.
func (a *AccessResult) IsOwner() bool {
	return a.Role == models.RoleOwner
}

// ResolveAccess determines what userID may do with documentID.
//
// The check is a pure read and is recomputed on every call; access
// decisions are never cached. A missing document and a document the
// caller has no standing on both return ErrNotFound so the outcomes
// are externally indistinguishable.
func ResolveAccess(db *gorm.DB, userID, documentID uint64) (*AccessResult, error) {
	var doc models.Document
	err := db.Select("document_id", "owner_id").
		Where("document_id = ?", documentID).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("resolve access: %w", err)
	}

	if doc.OwnerID == userID {
		return &AccessResult{Role: models.RoleOwner, CanRead: true, CanWrite: true}, nil
	}

	var grant models.Collaborator
	err = db.Where("document_id = ? AND user_id = ?", documentID, userID).
		First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("resolve access: %w", err)
	}

	switch grant.Role {
	case models.RoleEdit:
		return &AccessResult{Role: models.RoleEdit, CanRead: true, CanWrite: true}, nil
	case models.RoleView:
		return &AccessResult{Role: models.RoleView, CanRead: true, CanWrite: false}, nil
	default:
		// Unreachable while the role column check holds
		return nil, fmt.Errorf("resolve access: unknown role %q", grant.Role)
	}
}

// AuthorizeRead resolves access and returns the full document when any
// role (owner, edit, view) is held.
func AuthorizeRead(db *gorm.DB, userID, documentID uint64) (*models.Document, *AccessResult, error) {
	access, err := ResolveAccess(db, userID, documentID)
	if err != nil {
		return nil, nil, err
	}

	var doc models.Document
	if err := db.Where("document_id = ?", documentID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Deleted between the access check and the fetch
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("authorize read: %w", err)
	}

	return &doc, access, nil
}

// AuthorizeWrite resolves access and permits only owner and edit roles.
func AuthorizeWrite(db *gorm.DB, userID, documentID uint64) (*AccessResult, error) {
	access, err := ResolveAccess(db, userID, documentID)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite {
		return nil, ErrDenied
	}
	return access, nil
}

// requireOwner resolves access and permits the owner role only. A caller
// with a grant gets ErrDenied; a caller with no standing gets ErrNotFound.
func requireOwner(db *gorm.DB, userID, documentID uint64) error {
	access, err := ResolveAccess(db, userID, documentID)
	if err != nil {
		return err
	}
	if !access.IsOwner() {
		return ErrDenied
	}
	return nil
}
