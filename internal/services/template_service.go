// internal/services/template_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gradpath/gradpath-backend/internal/models"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

type TemplateService struct {
	db *gorm.DB
}

type CreateTemplateRequest struct {
	Name        string                        `json:"name" validate:"required,min=1,max=255"`
	Description string                        `json:"description,omitempty"`
	Category    models.TemplateCategory       `json:"category" validate:"required,oneof=graduate undergraduate scholarship custom"`
	Blueprints  []models.RequirementBlueprint `json:"blueprints" validate:"required,min=1,dive"`
}

type UpdateTemplateRequest struct {
	Name        string                        `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string                       `json:"description,omitempty"`
	Category    models.TemplateCategory       `json:"category,omitempty" validate:"omitempty,oneof=graduate undergraduate scholarship custom"`
	Blueprints  []models.RequirementBlueprint `json:"blueprints,omitempty" validate:"omitempty,min=1,dive"`
}

type TemplateFilterParams struct {
	utils.PaginationParams
	Category      *models.TemplateCategory `json:"category,omitempty"`
	IncludeSystem bool                     `json:"include_system"`
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

func (s *TemplateService) ListTemplates(userID uuid.UUID, params TemplateFilterParams) ([]models.RequirementsTemplate, int64, error) {
	query := s.db.Model(&models.RequirementsTemplate{})
	if params.IncludeSystem {
		query = query.Where("is_system_template = ? OR created_by = ?", true, userID)
	} else {
		query = query.Where("created_by = ?", userID)
	}
	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count templates: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "usage_count", "category"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var templates []models.RequirementsTemplate
	if err := query.Find(&templates).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch templates: %w", err)
	}

	return templates, total, nil
}

func (s *TemplateService) GetTemplate(templateID, userID uuid.UUID) (*models.RequirementsTemplate, error) {
	var template models.RequirementsTemplate
	if err := s.db.First(&template, "id = ?", templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("template not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !template.IsSystemTemplate && (template.CreatedBy == nil || *template.CreatedBy != userID) {
		return nil, errors.New("unauthorized to access this template")
	}

	return &template, nil
}

func (s *TemplateService) CreateTemplate(userID uuid.UUID, req *CreateTemplateRequest) (*models.RequirementsTemplate, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	for _, bp := range req.Blueprints {
		if !bp.Category.IsValid() || !bp.RequirementType.IsValid() {
			return nil, errors.New("invalid blueprint category or type")
		}
	}

	template := &models.RequirementsTemplate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Blueprints:  models.BlueprintList(req.Blueprints),
		CreatedBy:   &userID,
	}

	if err := s.db.Create(template).Error; err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	return template, nil
}

func (s *TemplateService) UpdateTemplate(templateID, userID uuid.UUID, req *UpdateTemplateRequest) (*models.RequirementsTemplate, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	template, err := s.GetTemplate(templateID, userID)
	if err != nil {
		return nil, err
	}
	if template.IsSystemTemplate {
		return nil, errors.New("unauthorized to modify a system template")
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
	if req.Blueprints != nil {
		for _, bp := range req.Blueprints {
			if !bp.Category.IsValid() || !bp.RequirementType.IsValid() {
				return nil, errors.New("invalid blueprint category or type")
			}
		}
		updates["blueprints"] = models.BlueprintList(req.Blueprints)
	}

	if len(updates) > 0 {
		if err := s.db.Model(template).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update template: %w", err)
		}
	}

	return template, nil
}

func (s *TemplateService) DeleteTemplate(templateID, userID uuid.UUID) error {
	template, err := s.GetTemplate(templateID, userID)
	if err != nil {
		return err
	}
	if template.IsSystemTemplate {
		return errors.New("unauthorized to delete a system template")
	}

	if err := s.db.Delete(template).Error; err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	return nil
}

// ApplyTemplate copies every blueprint of a template into new pending
// requirements on the target package. The copy is transactional; the
// template's usage counter is incremented afterwards as a best-effort side
// effect that never fails the apply.
func (s *TemplateService) ApplyTemplate(templateID, applicationID, userID uuid.UUID) ([]models.Requirement, error) {
	template, err := s.GetTemplate(templateID, userID)
	if err != nil {
		return nil, err
	}

	created := make([]models.Requirement, 0, len(template.Blueprints))
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedApplication(tx, applicationID, userID); err != nil {
			return err
		}

		for _, blueprint := range template.Blueprints {
			requirement := blueprint.NewRequirement(applicationID)
			if err := tx.Create(&requirement).Error; err != nil {
				return fmt.Errorf("failed to copy blueprint %q: %w", blueprint.Name, err)
			}
			created = append(created, requirement)
		}

		_, err := recomputeProgress(tx, applicationID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Usage accounting is advisory only
	if err := s.db.Model(&models.RequirementsTemplate{}).
		Where("id = ?", templateID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
		logrus.WithError(err).WithField("template_id", templateID).
			Warn("Failed to increment template usage count")
	}

	return created, nil
}
