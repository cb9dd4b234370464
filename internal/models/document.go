package models

import (
	"time"

	"gorm.io/datatypes"
)

// Document represents a rich-text document. Content is the editor's
// serialized output and is stored as an opaque JSON blob; the server
// never inspects it.
type Document struct {
	DocumentID   uint64 `gorm:"primaryKey;autoIncrement"`
	OwnerID      uint64 `gorm:"not null;index"`
	DocumentName string `gorm:"size:255;not null"`
	Content      datatypes.JSON `gorm:"type:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time `gorm:"index"`
	Owner        User           `gorm:"foreignKey:OwnerID"`
	Grants       []Collaborator `gorm:"foreignKey:DocumentID"`
}

// TableName overrides the table name for Document
func (Document) TableName() string {
	return "documents"
}

// DocumentSummary is the list-view shape returned by the documents index.
// Role is "owner", "edit" or "view" depending on the caller's standing.
type DocumentSummary struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsOwner   bool      `json:"isOwner"`
	UpdatedAt time.Time `json:"updatedAt"`
}
