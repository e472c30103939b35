// internal/services/interview_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gradpath/gradpath-backend/internal/models"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

type InterviewService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type CreateInterviewRequest struct {
	InterviewType   models.InterviewType `json:"interview_type" validate:"required,oneof=video phone in_person"`
	ScheduledDate   *time.Time           `json:"scheduled_date,omitempty"`
	DurationMinutes int                  `json:"duration_minutes,omitempty" validate:"omitempty,min=0"`
	Interviewer     string               `json:"interviewer,omitempty"`
	Location        string               `json:"location,omitempty"`
	MeetingURL      string               `json:"meeting_url,omitempty" validate:"omitempty,url"`
	MeetingID       string               `json:"meeting_id,omitempty"`
	MeetingPassword string               `json:"meeting_password,omitempty"`
	Notes           string               `json:"notes,omitempty"`
}

type UpdateInterviewRequest struct {
	InterviewType   models.InterviewType   `json:"interview_type,omitempty" validate:"omitempty,oneof=video phone in_person"`
	Status          models.InterviewStatus `json:"status,omitempty" validate:"omitempty,oneof=scheduled completed cancelled rescheduled"`
	ScheduledDate   *time.Time             `json:"scheduled_date,omitempty"`
	DurationMinutes *int                   `json:"duration_minutes,omitempty" validate:"omitempty,min=0"`
	Interviewer     *string                `json:"interviewer,omitempty"`
	Location        *string                `json:"location,omitempty"`
	MeetingURL      *string                `json:"meeting_url,omitempty"`
	MeetingID       *string                `json:"meeting_id,omitempty"`
	MeetingPassword *string                `json:"meeting_password,omitempty"`
	Notes           *string                `json:"notes,omitempty"`
}

func NewInterviewService(db *gorm.DB, notificationService *NotificationService) *InterviewService {
	return &InterviewService{
		db:                  db,
		notificationService: notificationService,
	}
}

func (s *InterviewService) ListInterviews(applicationID, userID uuid.UUID, params utils.PaginationParams) ([]models.Interview, int64, error) {
	if _, err := findOwnedApplication(s.db, applicationID, userID); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Interview{}).Where("application_id = ?", applicationID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count interviews: %w", err)
	}

	allowedSortFields := []string{"created_at", "scheduled_date", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var interviews []models.Interview
	if err := query.Find(&interviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch interviews: %w", err)
	}

	return interviews, total, nil
}

func (s *InterviewService) CreateInterview(applicationID, userID uuid.UUID, req *CreateInterviewRequest) (*models.Interview, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	application, err := findOwnedApplication(s.db, applicationID, userID)
	if err != nil {
		return nil, err
	}

	interview := &models.Interview{
		ApplicationID:   applicationID,
		InterviewType:   req.InterviewType,
		Status:          models.InterviewStatusScheduled,
		ScheduledDate:   req.ScheduledDate,
		DurationMinutes: req.DurationMinutes,
		Interviewer:     req.Interviewer,
		Location:        req.Location,
		MeetingURL:      req.MeetingURL,
		MeetingID:       req.MeetingID,
		MeetingPassword: req.MeetingPassword,
		Notes:           req.Notes,
	}

	if err := s.db.Create(interview).Error; err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	go s.sendScheduledEmail(application, interview)

	return interview, nil
}

func (s *InterviewService) sendScheduledEmail(application *models.ApplicationPackage, interview *models.Interview) {
	if s.notificationService == nil {
		return
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", application.UserID).Error; err != nil {
		logrus.WithError(err).Warn("Failed to load user for interview email")
		return
	}
	if err := s.notificationService.SendInterviewScheduledEmail(&user, application, interview); err != nil {
		logrus.WithError(err).Warn("Failed to send interview scheduled email")
	}
}

func (s *InterviewService) findOwnedInterview(interviewID, userID uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	if err := s.db.First(&interview, "id = ?", interviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("interview not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if _, err := findOwnedApplication(s.db, interview.ApplicationID, userID); err != nil {
		return nil, err
	}
	return &interview, nil
}

func (s *InterviewService) UpdateInterview(interviewID, userID uuid.UUID, req *UpdateInterviewRequest) (*models.Interview, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	interview, err := s.findOwnedInterview(interviewID, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.InterviewType != "" {
		updates["interview_type"] = req.InterviewType
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.ScheduledDate != nil {
		updates["scheduled_date"] = *req.ScheduledDate
		// Moving a scheduled interview marks it rescheduled unless the
		// caller sets an explicit status
		if req.Status == "" && interview.Status == models.InterviewStatusScheduled && interview.ScheduledDate != nil {
			updates["status"] = models.InterviewStatusRescheduled
		}
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Interviewer != nil {
		updates["interviewer"] = *req.Interviewer
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.MeetingURL != nil {
		updates["meeting_url"] = *req.MeetingURL
	}
	if req.MeetingID != nil {
		updates["meeting_id"] = *req.MeetingID
	}
	if req.MeetingPassword != nil {
		updates["meeting_password"] = *req.MeetingPassword
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(interview).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update interview: %w", err)
		}
	}

	return interview, nil
}

func (s *InterviewService) DeleteInterview(interviewID, userID uuid.UUID) error {
	interview, err := s.findOwnedInterview(interviewID, userID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(interview).Error; err != nil {
		return fmt.Errorf("failed to delete interview: %w", err)
	}

	return nil
}
