// internal/services/application_service.go
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

type ApplicationService struct {
	db *gorm.DB
}

type CreateApplicationRequest struct {
	Name                string                 `json:"name" validate:"required,min=1,max=255"`
	ApplicationType     models.ApplicationType `json:"application_type" validate:"required,oneof=scholarship school program external"`
	Priority            models.PackagePriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	ApplicationDeadline *time.Time             `json:"application_deadline,omitempty"`
	TargetID            string                 `json:"target_id,omitempty"`
	TargetName          string                 `json:"target_name,omitempty"`
	IsExternal          bool                   `json:"is_external"`
	ExternalURL         string                 `json:"external_url,omitempty" validate:"omitempty,url"`
	ExternalReference   string                 `json:"external_reference,omitempty"`
	Notes               string                 `json:"notes,omitempty"`
}

type UpdateApplicationRequest struct {
	Name                string                 `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Status              models.PackageStatus   `json:"status,omitempty" validate:"omitempty,oneof=draft in_progress submitted accepted rejected waitlisted"`
	Priority            models.PackagePriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	ApplicationDeadline *time.Time             `json:"application_deadline,omitempty"`
	TargetID            *string                `json:"target_id,omitempty"`
	TargetName          *string                `json:"target_name,omitempty"`
	ExternalURL         *string                `json:"external_url,omitempty"`
	ExternalReference   *string                `json:"external_reference,omitempty"`
	Notes               *string                `json:"notes,omitempty"`
}

type ApplicationSearchParams struct {
	utils.PaginationParams
	Status   *models.PackageStatus   `json:"status,omitempty"`
	Type     *models.ApplicationType `json:"type,omitempty"`
	Priority *models.PackagePriority `json:"priority,omitempty"`
}

// ApplicationDashboard is the composed read model for one package: the
// package row plus every related collection and the freshly computed
// progress summary.
type ApplicationDashboard struct {
	Application       *models.ApplicationPackage  `json:"application"`
	Requirements      []models.Requirement        `json:"requirements"`
	Documents         []models.Document           `json:"documents"`
	Interviews        []models.Interview          `json:"interviews"`
	SubmissionStatus  *models.SubmissionStatus    `json:"submission_status,omitempty"`
	Progress          models.RequirementsProgress `json:"progress"`
	Readiness         models.Readiness            `json:"readiness"`
	ReadinessLabel    string                      `json:"readiness_label"`
	DaysUntilDeadline *int                        `json:"days_until_deadline,omitempty"`
}

type ApplicationStats struct {
	Total             int64                            `json:"total"`
	ByStatus          map[models.PackageStatus]int64   `json:"by_status"`
	ByType            map[models.ApplicationType]int64 `json:"by_type"`
	UpcomingDeadlines []models.ApplicationPackage      `json:"upcoming_deadlines"`
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

func (s *ApplicationService) CreateApplication(userID uuid.UUID, req *CreateApplicationRequest) (*models.ApplicationPackage, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PackagePriorityMedium
	}

	application := &models.ApplicationPackage{
		UserID:               userID,
		Name:                 req.Name,
		ApplicationType:      req.ApplicationType,
		Status:               models.PackageStatusDraft,
		Priority:             priority,
		ApplicationDeadline:  req.ApplicationDeadline,
		TargetID:             req.TargetID,
		TargetName:           req.TargetName,
		IsExternal:           req.IsExternal || req.ApplicationType == models.ApplicationTypeExternal,
		ExternalURL:          req.ExternalURL,
		ExternalReference:    req.ExternalReference,
		Notes:                req.Notes,
		RequirementsProgress: models.AggregateProgress(nil).Snapshot(),
	}

	if err := s.db.Create(application).Error; err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return application, nil
}

func (s *ApplicationService) GetApplication(applicationID, userID uuid.UUID) (*models.ApplicationPackage, error) {
	return findOwnedApplication(s.db, applicationID, userID)
}

// GetDashboard composes the package with its requirements, documents,
// interviews and submission status into one response. Progress is
// recomputed from the live requirement set rather than trusting the
// denormalized snapshot.
func (s *ApplicationService) GetDashboard(applicationID, userID uuid.UUID) (*ApplicationDashboard, error) {
	application, err := findOwnedApplication(s.db, applicationID, userID)
	if err != nil {
		return nil, err
	}

	var requirements []models.Requirement
	if err := s.db.Where("application_id = ?", applicationID).
		Order("display_order asc, created_at asc").
		Find(&requirements).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch requirements: %w", err)
	}

	var documents []models.Document
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&documents).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}
	attachRequirementLinks(documents, requirements)

	var interviews []models.Interview
	if err := s.db.Where("application_id = ?", applicationID).
		Order("scheduled_date asc").
		Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch interviews: %w", err)
	}

	var submission models.SubmissionStatus
	var submissionPtr *models.SubmissionStatus
	err = s.db.Where("application_id = ?", applicationID).First(&submission).Error
	if err == nil {
		submissionPtr = &submission
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch submission status: %w", err)
	}

	progress := models.AggregateProgress(requirements)
	readiness := models.ClassifyReadiness(progress.RequiredPercentage)

	return &ApplicationDashboard{
		Application:       application,
		Requirements:      requirements,
		Documents:         documents,
		Interviews:        interviews,
		SubmissionStatus:  submissionPtr,
		Progress:          progress,
		Readiness:         readiness,
		ReadinessLabel:    readiness.Label(),
		DaysUntilDeadline: application.DaysUntilDeadline(time.Now()),
	}, nil
}

// attachRequirementLinks fills in each document's derived back-references
// from the requirement side of the relation.
func attachRequirementLinks(documents []models.Document, requirements []models.Requirement) {
	linksByDocument := make(map[uuid.UUID][]uuid.UUID)
	for _, req := range requirements {
		if req.LinkedDocumentID != nil {
			linksByDocument[*req.LinkedDocumentID] = append(linksByDocument[*req.LinkedDocumentID], req.ID)
		}
	}
	for i := range documents {
		if links, ok := linksByDocument[documents[i].ID]; ok {
			documents[i].LinkedToRequirements = links
		} else {
			documents[i].LinkedToRequirements = []uuid.UUID{}
		}
	}
}

func (s *ApplicationService) ListApplications(userID uuid.UUID, params ApplicationSearchParams) ([]models.ApplicationPackage, int64, error) {
	query := s.db.Model(&models.ApplicationPackage{}).Where("user_id = ?", userID)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Type != nil {
		query = query.Where("application_type = ?", *params.Type)
	}
	if params.Priority != nil {
		query = query.Where("priority = ?", *params.Priority)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(target_name) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "application_deadline", "priority", "status", "progress"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var applications []models.ApplicationPackage
	if err := query.Find(&applications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch applications: %w", err)
	}

	return applications, total, nil
}

func (s *ApplicationService) UpdateApplication(applicationID, userID uuid.UUID, req *UpdateApplicationRequest) (*models.ApplicationPackage, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	application, err := findOwnedApplication(s.db, applicationID, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	if req.ApplicationDeadline != nil {
		updates["application_deadline"] = *req.ApplicationDeadline
	}
	if req.TargetID != nil {
		updates["target_id"] = *req.TargetID
	}
	if req.TargetName != nil {
		updates["target_name"] = *req.TargetName
	}
	if req.ExternalURL != nil {
		updates["external_url"] = *req.ExternalURL
	}
	if req.ExternalReference != nil {
		updates["external_reference"] = *req.ExternalReference
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(application).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update application: %w", err)
		}
	}

	return application, nil
}

// DeleteApplication removes a package and all of its dependent records in
// one transaction; either everything goes or the delete is reported failed.
func (s *ApplicationService) DeleteApplication(applicationID, userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		application, err := findOwnedApplication(tx, applicationID, userID)
		if err != nil {
			return err
		}

		if err := tx.Where("application_id = ?", applicationID).
			Delete(&models.Interview{}).Error; err != nil {
			return fmt.Errorf("failed to delete interviews: %w", err)
		}
		if err := tx.Where("application_id = ?", applicationID).
			Delete(&models.SubmissionStatus{}).Error; err != nil {
			return fmt.Errorf("failed to delete submission status: %w", err)
		}
		if err := tx.Where("application_id = ?", applicationID).
			Delete(&models.Requirement{}).Error; err != nil {
			return fmt.Errorf("failed to delete requirements: %w", err)
		}
		if err := tx.Delete(application).Error; err != nil {
			return fmt.Errorf("failed to delete application: %w", err)
		}

		return nil
	})
}

func (s *ApplicationService) GetStats(userID uuid.UUID) (*ApplicationStats, error) {
	stats := &ApplicationStats{
		ByStatus: make(map[models.PackageStatus]int64),
		ByType:   make(map[models.ApplicationType]int64),
	}

	if err := s.db.Model(&models.ApplicationPackage{}).
		Where("user_id = ?", userID).
		Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	var statusCounts []struct {
		Status models.PackageStatus
		Count  int64
	}
	if err := s.db.Model(&models.ApplicationPackage{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate by status: %w", err)
	}
	for _, row := range statusCounts {
		stats.ByStatus[row.Status] = row.Count
	}

	var typeCounts []struct {
		ApplicationType models.ApplicationType
		Count           int64
	}
	if err := s.db.Model(&models.ApplicationPackage{}).
		Select("application_type, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("application_type").
		Scan(&typeCounts).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate by type: %w", err)
	}
	for _, row := range typeCounts {
		stats.ByType[row.ApplicationType] = row.Count
	}

	if err := s.db.Where("user_id = ? AND application_deadline IS NOT NULL AND application_deadline >= ?", userID, time.Now()).
		Where("status NOT IN ?", []models.PackageStatus{models.PackageStatusSubmitted, models.PackageStatusAccepted, models.PackageStatusRejected}).
		Order("application_deadline asc").
		Limit(5).
		Find(&stats.UpcomingDeadlines).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming deadlines: %w", err)
	}

	return stats, nil
}
