package models

import (
	"time"
)

// Collaborator roles. Ownership is not a grant: it lives on
// Document.OwnerID, so "owner" never appears in this table.
const (
	RoleView = "view"
	RoleEdit = "edit"

	// RoleOwner is derived from Document.OwnerID and is never written
	// to the collaborators table.
	RoleOwner = "owner"
)

// ValidRole reports whether role is one of the storable grant roles.
func ValidRole(role string) bool {
	return role == RoleView || role == RoleEdit
}

// Collaborator is a (document, user, role) grant. A user holds at most
// one grant per document; re-inviting upserts the row.
type Collaborator struct {
	CollaboratorID uint64 `gorm:"primaryKey;autoIncrement"`
	DocumentID     uint64 `gorm:"not null;uniqueIndex:idx_document_user"`
	UserID         uint64 `gorm:"not null;uniqueIndex:idx_document_user"`
	Role           string `gorm:"size:8;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	// references is pinned: User's key is also named UserID, and without
	// it GORM reads the relation as a has-one off CollaboratorID.
	User User `gorm:"foreignKey:UserID;references:UserID"`
}

// TableName overrides the table name for Collaborator
func (Collaborator) TableName() string {
	return "collaborators"
}

// CollaboratorView is the shape returned when the owner lists grants.
type CollaboratorView struct {
	ID   uint64     `json:"id"`
	Role string     `json:"role"`
	User PublicUser `json:"user"`
}
