package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/notehq/note-api/internal/services"
	"github.com/notehq/note-api/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DocumentHandler handles document CRUD routes
type DocumentHandler struct {
	DB *gorm.DB
}

type documentBody struct {
	Name    *string         `json:"name"`
	Content json.RawMessage `json:"content"`
}

// ListDocuments handles GET /api/documents
// @Summary List documents the caller can access
// @Description Owned documents plus documents shared with the caller, most recently updated first
// @Tags Documents
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) ListDocuments(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "documents.list")
	}

	summaries, err := services.ListAccessibleDocuments(h.DB, userID)
	if err != nil {
		return serviceErrorResponse(c, err, "documents.list")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"documents": summaries,
	})
}

// CreateDocument handles POST /api/documents
// @Summary Create a document owned by the caller
// @Tags Documents
// @Accept json
// @Produce json
// @Param body body documentBody true "Name and initial editor content"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "documents.create")
	}

	var body documentBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Incorrect inputs", fiber.StatusBadRequest, "documents.validation.input")
	}

	name := "Untitled"
	if body.Name != nil && *body.Name != "" {
		name = *body.Name
	}

	doc, err := services.CreateDocument(h.DB, userID, name, datatypes.JSON(body.Content))
	if err != nil {
		return serviceErrorResponse(c, err, "documents.create")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        doc.DocumentID,
		"name":      doc.DocumentName,
		"role":      "owner",
		"isOwner":   true,
		"createdAt": doc.CreatedAt,
		"updatedAt": doc.UpdatedAt,
	})
}

// Permissions handles GET /api/user/permissions
// @Summary Summarize the caller's role on every accessible document
// @Description Dashboard helper; the same roles the document routes enforce
// @Tags Documents
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/permissions [get]
func (h *DocumentHandler) Permissions(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "documents.permissions")
	}

	summaries, err := services.ListAccessibleDocuments(h.DB, userID)
	if err != nil {
		return serviceErrorResponse(c, err, "documents.permissions")
	}

	permissions := make([]fiber.Map, 0, len(summaries))
	for _, s := range summaries {
		permissions = append(permissions, fiber.Map{
			"id":      s.ID,
			"role":    s.Role,
			"isOwner": s.IsOwner,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"permissions": permissions,
	})
}

// GetDocument handles GET /api/documents/:id
// @Summary Fetch a document
// @Description Any held role (owner, edit, view) permits reading
// @Tags Documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "documents.get")
	}

	documentID, err := parseDocumentID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "documents.validation.input")
	}

	doc, access, err := services.GetDocument(h.DB, userID, documentID)
	if err != nil {
		return serviceErrorResponse(c, err, "documents.get")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":        doc.DocumentID,
		"name":      doc.DocumentName,
		"content":   doc.Content,
		"role":      access.Role,
		"isOwner":   access.IsOwner(),
		"createdAt": doc.CreatedAt,
		"updatedAt": doc.UpdatedAt,
	})
}

// SaveDocument handles PUT /api/documents/:id
// @Summary Save a document's name and/or content
// @Description Autosave target; requires the edit or owner role
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param body body documentBody true "Fields to update"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents/{id} [put]
func (h *DocumentHandler) SaveDocument(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "documents.save")
	}

	documentID, err := parseDocumentID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "documents.validation.input")
	}

	var body documentBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Incorrect inputs", fiber.StatusBadRequest, "documents.validation.input")
	}

	if body.Name == nil && body.Content == nil {
		return utils.ErrorResponse(c, "Incorrect inputs", fiber.StatusBadRequest, "documents.validation.input")
	}

	err = services.SaveDocument(h.DB, userID, documentID, body.Name, datatypes.JSON(body.Content))
	if err != nil {
		return serviceErrorResponse(c, err, "documents.save")
	}

	return utils.MutationSuccessResponse(c, 1)
}

// DeleteDocument handles DELETE /api/documents/:id
// @Summary Delete a document and its grants
// @Description Owner-only
// @Tags Documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "documents.delete")
	}

	documentID, err := parseDocumentID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "documents.validation.input")
	}

	if err := services.DeleteDocument(h.DB, userID, documentID); err != nil {
		return serviceErrorResponse(c, err, "documents.delete")
	}

	return utils.MutationSuccessResponse(c, 1)
}
