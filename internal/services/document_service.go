// internal/services/document_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/gradpath/gradpath-backend/internal/models"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

type DocumentService struct {
	db *gorm.DB
}

type CreateDocumentRequest struct {
	Title        string                `json:"title" validate:"required,min=1,max=255"`
	DocumentType string                `json:"document_type" validate:"required"`
	Category     string                `json:"category,omitempty"`
	Status       models.DocumentStatus `json:"status,omitempty" validate:"omitempty,oneof=draft review approved rejected"`
	FileURL      string                `json:"file_url,omitempty"`
	FileSize     int64                 `json:"file_size,omitempty"`
	MimeType     string                `json:"mime_type,omitempty"`
	Content      string                `json:"content,omitempty"`
	Tags         []string              `json:"tags,omitempty"`
}

type UpdateDocumentRequest struct {
	Title    string                `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Category *string               `json:"category,omitempty"`
	Status   models.DocumentStatus `json:"status,omitempty" validate:"omitempty,oneof=draft review approved rejected"`
	Content  *string               `json:"content,omitempty"`
	Tags     []string              `json:"tags,omitempty"`
}

type DocumentFilterParams struct {
	utils.PaginationParams
	DocumentType *string                `json:"document_type,omitempty"`
	Status       *models.DocumentStatus `json:"status,omitempty"`
	LinkedOnly   bool                   `json:"linked_only"`
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

func (s *DocumentService) CreateDocument(userID uuid.UUID, req *CreateDocumentRequest) (*models.Document, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// A document is either upload-backed or authored, never both
	if req.FileURL != "" && req.Content != "" {
		return nil, errors.New("document cannot have both a file and authored content")
	}

	status := req.Status
	if status == "" {
		status = models.DocumentStatusDraft
	}

	document := &models.Document{
		UserID:       userID,
		Title:        req.Title,
		DocumentType: req.DocumentType,
		Category:     req.Category,
		Status:       status,
		FileURL:      req.FileURL,
		FileSize:     req.FileSize,
		MimeType:     req.MimeType,
		Content:      req.Content,
		Tags:         pq.StringArray(req.Tags),
	}

	if err := s.db.Create(document).Error; err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	document.LinkedToRequirements = []uuid.UUID{}

	return document, nil
}

func (s *DocumentService) GetDocument(documentID, userID uuid.UUID) (*models.Document, error) {
	var document models.Document
	if err := s.db.First(&document, "id = ?", documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("document not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if document.UserID != userID {
		return nil, errors.New("unauthorized to access this document")
	}

	links, err := s.linkedRequirementIDs(document.ID)
	if err != nil {
		return nil, err
	}
	document.LinkedToRequirements = links

	return &document, nil
}

func (s *DocumentService) ListDocuments(userID uuid.UUID, params DocumentFilterParams) ([]models.Document, int64, error) {
	query := s.db.Model(&models.Document{}).Where("user_id = ?", userID)

	if params.DocumentType != nil {
		query = query.Where("document_type = ?", *params.DocumentType)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ?", searchTerm)
	}
	if params.LinkedOnly {
		query = query.Where("id IN (?)", s.db.Model(&models.Requirement{}).
			Select("linked_document_id").
			Where("linked_document_id IS NOT NULL"))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "document_type", "status"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var documents []models.Document
	if err := query.Find(&documents).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch documents: %w", err)
	}

	// One pass over the user's requirement links covers every page entry
	var requirements []models.Requirement
	if err := s.db.
		Joins("JOIN application_packages ON application_packages.id = requirements.application_id").
		Where("application_packages.user_id = ? AND requirements.linked_document_id IS NOT NULL", userID).
		Find(&requirements).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch requirement links: %w", err)
	}
	attachRequirementLinks(documents, requirements)

	return documents, total, nil
}

func (s *DocumentService) UpdateDocument(documentID, userID uuid.UUID, req *UpdateDocumentRequest) (*models.Document, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	document, err := s.GetDocument(documentID, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Content != nil {
		if document.HasFile() {
			return nil, errors.New("cannot author content on an uploaded document")
		}
		updates["content"] = *req.Content
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}

	if len(updates) > 0 {
		if err := s.db.Model(document).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update document: %w", err)
		}
	}

	return document, nil
}

// DeleteDocument refuses to remove a document that a requirement still
// references; the caller must unlink it first.
func (s *DocumentService) DeleteDocument(documentID, userID uuid.UUID) error {
	document, err := s.GetDocument(documentID, userID)
	if err != nil {
		return err
	}

	if len(document.LinkedToRequirements) > 0 {
		return errors.New("document is linked to a requirement")
	}

	if err := s.db.Delete(document).Error; err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

// GetLinkedRequirements returns the requirements currently referencing a
// document.
func (s *DocumentService) GetLinkedRequirements(documentID, userID uuid.UUID) ([]models.Requirement, error) {
	if _, err := s.GetDocument(documentID, userID); err != nil {
		return nil, err
	}

	var requirements []models.Requirement
	if err := s.db.Where("linked_document_id = ?", documentID).
		Order("display_order asc").
		Find(&requirements).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch linked requirements: %w", err)
	}

	return requirements, nil
}

func (s *DocumentService) linkedRequirementIDs(documentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := s.db.Model(&models.Requirement{}).
		Where("linked_document_id = ?", documentID).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch document links: %w", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}
