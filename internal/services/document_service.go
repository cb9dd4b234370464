package services

import (
	"fmt"
	"sort"

	"github.com/notehq/note-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// CreateDocument creates a document owned by ownerID.
func CreateDocument(db *gorm.DB, ownerID uint64, name string, content datatypes.JSON) (*models.Document, error) {
	doc := models.Document{
		OwnerID:      ownerID,
		DocumentName: name,
		Content:      content,
	}
	if err := db.Create(&doc).Error; err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return &doc, nil
}

// GetDocument returns the document and the caller's access decision.
func GetDocument(db *gorm.DB, userID, documentID uint64) (*models.Document, *AccessResult, error) {
	return AuthorizeRead(db, userID, documentID)
}

// SaveDocument updates name and/or content after a write-permission
// check. Either field may be nil to leave it unchanged; updated_at is
// bumped on every save.
func SaveDocument(db *gorm.DB, userID, documentID uint64, name *string, content datatypes.JSON) error {
	if _, err := AuthorizeWrite(db, userID, documentID); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if name != nil {
		updates["document_name"] = *name
	}
	if content != nil {
		updates["content"] = content
	}
	if len(updates) == 0 {
		return nil
	}

	err := db.Model(&models.Document{}).
		Where("document_id = ?", documentID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	return nil
}

// DeleteDocument removes the document and its grants. Owner-only.
func DeleteDocument(db *gorm.DB, userID, documentID uint64) error {
	if err := requireOwner(db, userID, documentID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", documentID).
			Delete(&models.Collaborator{}).Error; err != nil {
			return fmt.Errorf("delete document grants: %w", err)
		}
		if err := tx.Where("document_id = ?", documentID).
			Delete(&models.Document{}).Error; err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		return nil
	})
}

// ListAccessibleDocuments returns the union of documents userID owns and
// documents userID holds a grant on, most recently updated first. The
// owner invariant makes a collision impossible, but if one occurs the
// owned entry wins.
func ListAccessibleDocuments(db *gorm.DB, userID uint64) ([]models.DocumentSummary, error) {
	ownedQuery := db.Where("owner_id = ?", userID)
	if db.Dialector.Name() == "mysql" {
		ownedQuery = ownedQuery.Clauses(hints.UseIndex("idx_documents_updated_at"))
	}

	var owned []models.Document
	if err := ownedQuery.Order("updated_at DESC").Find(&owned).Error; err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	var grants []models.Collaborator
	if err := db.Where("user_id = ?", userID).Find(&grants).Error; err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	seen := make(map[uint64]struct{}, len(owned))
	summaries := make([]models.DocumentSummary, 0, len(owned)+len(grants))

	for _, doc := range owned {
		seen[doc.DocumentID] = struct{}{}
		summaries = append(summaries, models.DocumentSummary{
			ID:        doc.DocumentID,
			Name:      doc.DocumentName,
			Role:      models.RoleOwner,
			IsOwner:   true,
			UpdatedAt: doc.UpdatedAt,
		})
	}

	grantedIDs := make([]uint64, 0, len(grants))
	roleByDocument := make(map[uint64]string, len(grants))
	for _, grant := range grants {
		if _, ok := seen[grant.DocumentID]; ok {
			continue
		}
		grantedIDs = append(grantedIDs, grant.DocumentID)
		roleByDocument[grant.DocumentID] = grant.Role
	}

	if len(grantedIDs) > 0 {
		// Grants whose document is gone simply produce no row here
		var shared []models.Document
		err := db.Select("document_id", "document_name", "updated_at").
			Where("document_id IN ?", grantedIDs).
			Find(&shared).Error
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}

		for _, doc := range shared {
			summaries = append(summaries, models.DocumentSummary{
				ID:        doc.DocumentID,
				Name:      doc.DocumentName,
				Role:      roleByDocument[doc.DocumentID],
				IsOwner:   false,
				UpdatedAt: doc.UpdatedAt,
			})
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})

	return summaries, nil
}
