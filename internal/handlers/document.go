// internal/handlers/document.go
package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gradpath/gradpath-backend/internal/i18n"
	"github.com/gradpath/gradpath-backend/internal/models"
	"github.com/gradpath/gradpath-backend/internal/services"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

type DocumentHandler struct {
	documentService *services.DocumentService
	storageService  *services.StorageService
}

func NewDocumentHandler(documentService *services.DocumentService, storageService *services.StorageService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		storageService:  storageService,
	}
}

// GET /documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := services.DocumentFilterParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if docType := c.Query("document_type"); docType != "" {
		params.DocumentType = &docType
	}
	if status := c.Query("status"); status != "" {
		s := models.DocumentStatus(status)
		params.Status = &s
	}
	params.LinkedOnly = c.Query("linked_only") == "true"

	documents, total, err := h.documentService.ListDocuments(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(documents, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// POST /documents
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateDocumentRequest
	if !bindJSON(c, &req) {
		return
	}

	document, err := h.documentService.CreateDocument(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyDocumentCreated),
		"document": document,
	})
}

// POST /documents/upload
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "file"), nil)
		return
	}
	defer file.Close()

	title := c.PostForm("title")
	if title == "" {
		title = header.Filename
	}
	documentType := c.PostForm("document_type")
	if documentType == "" {
		documentType = "other"
	}
	category := c.PostForm("category")

	// Upload to storage
	options := h.storageService.GetDefaultUploadOptions(category)
	uploadResult, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	// Register the uploaded file as a document
	req := services.CreateDocumentRequest{
		Title:        title,
		DocumentType: documentType,
		Category:     category,
		FileURL:      uploadResult.URL,
		FileSize:     uploadResult.Size,
		MimeType:     uploadResult.MimeType,
	}

	document, err := h.documentService.CreateDocument(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyDocumentUploaded),
		"document": document,
	})
}

// GET /documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID", nil)
		return
	}

	document, err := h.documentService.GetDocument(id, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyDocumentNotFound)
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"document": document,
	})
}

// GET /documents/:id/requirements
func (h *DocumentHandler) GetLinkedRequirements(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID", nil)
		return
	}

	requirements, err := h.documentService.GetLinkedRequirements(id, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyDocumentNotFound)
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"requirements": requirements,
	})
}

// GET /documents/:id/download
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID", nil)
		return
	}

	document, err := h.documentService.GetDocument(id, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyDocumentNotFound)
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	if !document.HasFile() {
		utils.BadRequestResponse(c, "Document has no uploaded file", nil)
		return
	}

	if h.storageService == nil {
		utils.InternalErrorResponse(c, "file storage is not configured")
		return
	}

	key := h.storageService.KeyFromURL(document.FileURL)
	if key == "" {
		utils.BadRequestResponse(c, "Document file is not stored in managed storage", nil)
		return
	}

	url, err := h.storageService.GeneratePresignedURL(key, 15*time.Minute)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"download_url": url,
		"expires_in":   int((15 * time.Minute).Seconds()),
	})
}

// PUT /documents/:id
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID", nil)
		return
	}

	var req services.UpdateDocumentRequest
	if !bindJSON(c, &req) {
		return
	}

	document, err := h.documentService.UpdateDocument(id, userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyDocumentNotFound)
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyDocumentUpdated),
		"document": document,
	})
}

// DELETE /documents/:id
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID", nil)
		return
	}

	document, err := h.documentService.GetDocument(id, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyDocumentNotFound)
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	if err := h.documentService.DeleteDocument(id, userID); err != nil {
		if strings.Contains(err.Error(), "linked to a requirement") {
			utils.ConflictResponse(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	// Best effort cleanup of the stored file; the record is already gone
	if document.HasFile() && h.storageService != nil {
		if key := h.storageService.KeyFromURL(document.FileURL); key != "" {
			go func() {
				if err := h.storageService.DeleteFile(key); err != nil {
					logrus.WithError(err).Warn("Failed to delete stored file")
				}
			}()
		}
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDocumentDeleted),
	})
}
