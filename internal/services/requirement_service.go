// internal/services/requirement_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradpath/gradpath-backend/internal/models"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

type RequirementService struct {
	db *gorm.DB
}

type CreateRequirementRequest struct {
	Name            string                     `json:"name" validate:"required,min=1,max=255"`
	Description     string                     `json:"description,omitempty"`
	Category        models.RequirementCategory `json:"category" validate:"required"`
	RequirementType models.RequirementType     `json:"requirement_type" validate:"required"`
	IsRequired      bool                       `json:"is_required"`
	IsOptional      bool                       `json:"is_optional"`
	DisplayOrder    int                        `json:"display_order"`
	Notes           string                     `json:"notes,omitempty"`
	Deadline        *time.Time                 `json:"deadline,omitempty"`
}

type UpdateRequirementRequest struct {
	Name         string                     `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string                    `json:"description,omitempty"`
	Category     models.RequirementCategory `json:"category,omitempty"`
	IsRequired   *bool                      `json:"is_required,omitempty"`
	IsOptional   *bool                      `json:"is_optional,omitempty"`
	DisplayOrder *int                       `json:"display_order,omitempty"`
	Notes        *string                    `json:"notes,omitempty"`
	Deadline     *time.Time                 `json:"deadline,omitempty"`
}

type UpdateRequirementStatusRequest struct {
	Status models.RequirementStatus `json:"status" validate:"required"`
	Notes  string                   `json:"notes,omitempty"`
}

type RequirementFilterParams struct {
	utils.PaginationParams
	Status     *models.RequirementStatus   `json:"status,omitempty"`
	Category   *models.RequirementCategory `json:"category,omitempty"`
	Type       *models.RequirementType     `json:"type,omitempty"`
	IsRequired *bool                       `json:"is_required,omitempty"`
}

// BulkCreateResult reports the outcome of one item of a bulk add. Items are
// attempted independently; a failed item never rolls back earlier ones.
type BulkCreateResult struct {
	Name          string     `json:"name"`
	RequirementID *uuid.UUID `json:"requirement_id,omitempty"`
	Error         string     `json:"error,omitempty"`
}

func NewRequirementService(db *gorm.DB) *RequirementService {
	return &RequirementService{db: db}
}

// findOwnedApplication loads a package and verifies the caller owns it.
func findOwnedApplication(tx *gorm.DB, applicationID, userID uuid.UUID) (*models.ApplicationPackage, error) {
	var application models.ApplicationPackage
	if err := tx.First(&application, "id = ?", applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("application not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if application.UserID != userID {
		return nil, errors.New("unauthorized to access this application")
	}
	return &application, nil
}

// recomputeProgress re-aggregates the full requirement set of a package and
// writes the denormalized progress columns. Called inside the mutating
// transaction so readers never observe a stale snapshot after a write.
func recomputeProgress(tx *gorm.DB, applicationID uuid.UUID) (*models.RequirementsProgress, error) {
	var requirements []models.Requirement
	if err := tx.Where("application_id = ?", applicationID).Find(&requirements).Error; err != nil {
		return nil, fmt.Errorf("failed to load requirements: %w", err)
	}

	progress := models.AggregateProgress(requirements)
	updates := map[string]interface{}{
		"progress":              progress.Percentage,
		"requirements_progress": progress.Snapshot(),
	}
	if err := tx.Model(&models.ApplicationPackage{}).
		Where("id = ?", applicationID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}

	return &progress, nil
}

func (s *RequirementService) ListRequirements(applicationID, userID uuid.UUID, params RequirementFilterParams) ([]models.Requirement, int64, error) {
	if _, err := findOwnedApplication(s.db, applicationID, userID); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Requirement{}).Where("application_id = ?", applicationID)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}
	if params.Type != nil {
		query = query.Where("requirement_type = ?", *params.Type)
	}
	if params.IsRequired != nil {
		query = query.Where("is_required = ?", *params.IsRequired)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count requirements: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "deadline", "display_order", "status"}
	if params.Sort == "" || params.Sort == "created_at" {
		// Default to checklist order rather than insertion order
		params.Sort = "display_order"
		params.Order = "asc"
	}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var requirements []models.Requirement
	if err := query.Find(&requirements).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch requirements: %w", err)
	}

	return requirements, total, nil
}

func (s *RequirementService) CreateRequirement(applicationID, userID uuid.UUID, req *CreateRequirementRequest) (*models.Requirement, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Category.IsValid() {
		return nil, errors.New("invalid requirement category")
	}
	if !req.RequirementType.IsValid() {
		return nil, errors.New("invalid requirement type")
	}

	requirement := &models.Requirement{
		ApplicationID:   applicationID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		RequirementType: req.RequirementType,
		Status:          models.RequirementStatusPending,
		IsRequired:      req.IsRequired,
		IsOptional:      req.IsOptional,
		DisplayOrder:    req.DisplayOrder,
		Notes:           req.Notes,
		Deadline:        req.Deadline,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedApplication(tx, applicationID, userID); err != nil {
			return err
		}
		if err := tx.Create(requirement).Error; err != nil {
			return fmt.Errorf("failed to create requirement: %w", err)
		}
		if _, err := recomputeProgress(tx, applicationID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return requirement, nil
}

// BulkCreateRequirements adds several requirements in one call. Each item is
// attempted independently and reported in the result list; earlier successes
// stand even when a later item fails.
func (s *RequirementService) BulkCreateRequirements(applicationID, userID uuid.UUID, reqs []CreateRequirementRequest) ([]BulkCreateResult, error) {
	if _, err := findOwnedApplication(s.db, applicationID, userID); err != nil {
		return nil, err
	}

	results := make([]BulkCreateResult, 0, len(reqs))
	for i := range reqs {
		requirement, err := s.CreateRequirement(applicationID, userID, &reqs[i])
		result := BulkCreateResult{Name: reqs[i].Name}
		if err != nil {
			result.Error = err.Error()
		} else {
			result.RequirementID = &requirement.ID
		}
		results = append(results, result)
	}

	return results, nil
}

func (s *RequirementService) findOwnedRequirement(tx *gorm.DB, requirementID, userID uuid.UUID) (*models.Requirement, error) {
	var requirement models.Requirement
	if err := tx.First(&requirement, "id = ?", requirementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("requirement not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if _, err := findOwnedApplication(tx, requirement.ApplicationID, userID); err != nil {
		return nil, err
	}
	return &requirement, nil
}

func (s *RequirementService) UpdateRequirement(requirementID, userID uuid.UUID, req *UpdateRequirementRequest) (*models.Requirement, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.Category != "" && !req.Category.IsValid() {
		return nil, errors.New("invalid requirement category")
	}

	var requirement *models.Requirement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		requirement, err = s.findOwnedRequirement(tx, requirementID, userID)
		if err != nil {
			return err
		}

		updates := make(map[string]interface{})
		if req.Name != "" {
			updates["name"] = req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Category != "" {
			updates["category"] = req.Category
		}
		if req.IsRequired != nil {
			updates["is_required"] = *req.IsRequired
		}
		if req.IsOptional != nil {
			updates["is_optional"] = *req.IsOptional
		}
		if req.DisplayOrder != nil {
			updates["display_order"] = *req.DisplayOrder
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}
		if req.Deadline != nil {
			updates["deadline"] = *req.Deadline
		}

		if len(updates) > 0 {
			if err := tx.Model(requirement).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update requirement: %w", err)
			}
		}

		// Category and required-flag edits shift the breakdown partitions
		if _, err := recomputeProgress(tx, requirement.ApplicationID); err != nil {
			return err
		}
		return tx.First(requirement, "id = ?", requirementID).Error
	})
	if err != nil {
		return nil, err
	}

	return requirement, nil
}

func (s *RequirementService) UpdateRequirementStatus(requirementID, userID uuid.UUID, req *UpdateRequirementStatusRequest) (*models.Requirement, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Status.IsValid() {
		return nil, errors.New("invalid requirement status")
	}

	var requirement *models.Requirement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		requirement, err = s.findOwnedRequirement(tx, requirementID, userID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{"status": req.Status}
		if req.Notes != "" {
			updates["notes"] = req.Notes
		}
		if err := tx.Model(requirement).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update requirement status: %w", err)
		}

		if _, err := recomputeProgress(tx, requirement.ApplicationID); err != nil {
			return err
		}
		return tx.First(requirement, "id = ?", requirementID).Error
	})
	if err != nil {
		return nil, err
	}

	return requirement, nil
}

func (s *RequirementService) DeleteRequirement(requirementID, userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		requirement, err := s.findOwnedRequirement(tx, requirementID, userID)
		if err != nil {
			return err
		}

		if err := tx.Delete(requirement).Error; err != nil {
			return fmt.Errorf("failed to delete requirement: %w", err)
		}

		_, err = recomputeProgress(tx, requirement.ApplicationID)
		return err
	})
}

// LinkDocument points a requirement at a document. An existing link is
// overwritten; the relation is stored only on the requirement side, so the
// previous document needs no cleanup.
func (s *RequirementService) LinkDocument(requirementID, documentID, userID uuid.UUID) (*models.Requirement, error) {
	var requirement *models.Requirement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		requirement, err = s.findOwnedRequirement(tx, requirementID, userID)
		if err != nil {
			return err
		}

		var document models.Document
		if err := tx.First(&document, "id = ?", documentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("document not found")
			}
			return fmt.Errorf("database error: %w", err)
		}
		if document.UserID != userID {
			return errors.New("unauthorized to link this document")
		}

		if err := tx.Model(requirement).Update("linked_document_id", documentID).Error; err != nil {
			return fmt.Errorf("failed to link document: %w", err)
		}
		if _, err := recomputeProgress(tx, requirement.ApplicationID); err != nil {
			return err
		}

		return tx.First(requirement, "id = ?", requirementID).Error
	})
	if err != nil {
		return nil, err
	}

	return requirement, nil
}

// UnlinkDocument clears a requirement's document link. Unlinking an already
// unlinked requirement is a no-op.
func (s *RequirementService) UnlinkDocument(requirementID, userID uuid.UUID) (*models.Requirement, error) {
	var requirement *models.Requirement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		requirement, err = s.findOwnedRequirement(tx, requirementID, userID)
		if err != nil {
			return err
		}

		if err := tx.Model(requirement).Update("linked_document_id", nil).Error; err != nil {
			return fmt.Errorf("failed to unlink document: %w", err)
		}
		if _, err := recomputeProgress(tx, requirement.ApplicationID); err != nil {
			return err
		}

		return tx.First(requirement, "id = ?", requirementID).Error
	})
	if err != nil {
		return nil, err
	}

	return requirement, nil
}

// IsDocumentLinked reports whether any requirement currently references the
// document.
func (s *RequirementService) IsDocumentLinked(documentID uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Requirement{}).
		Where("linked_document_id = ?", documentID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check document links: %w", err)
	}
	return count > 0, nil
}
